package process

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// DefaultGrace is how long a canceled process may take to exit after SIGTERM.
const DefaultGrace = 3 * time.Second

// pipeDrainDelay bounds how long Wait keeps reading pipes held open by
// grandchildren after the direct child has exited.
const pipeDrainDelay = 2 * time.Second

// Command describes one invocation.
type Command struct {
	Binary string
	Args   []string
	// Dir is the working directory; empty inherits the caller's.
	Dir string
}

// String renders the command for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Binary}, c.Args...), " ")
}

// Result reports how a started process ended.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Canceled bool
	Duration time.Duration
}

// Succeeded reports a natural exit with status zero.
func (r Result) Succeeded() bool {
	return !r.Canceled && r.ExitCode == 0
}

// Diagnostic returns trimmed stderr, falling back to stdout.
func (r Result) Diagnostic() string {
	if msg := strings.TrimSpace(r.Stderr); msg != "" {
		return msg
	}
	return strings.TrimSpace(r.Stdout)
}

// Executor abstracts command execution for testability.
type Executor interface {
	// Run returns an error only when the process could not be started.
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Runner is the Executor backed by os/exec.
type Runner struct {
	grace   time.Duration
	maxTail int
}

// NewRunner returns a Runner that waits grace between SIGTERM and SIGKILL.
// A non-positive grace uses DefaultGrace.
func NewRunner(grace time.Duration) *Runner {
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &Runner{grace: grace, maxTail: defaultTailBytes}
}

// Run starts cmd and blocks until it exits or ctx is done.
func (r *Runner) Run(ctx context.Context, cmd Command) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Result{Canceled: true, ExitCode: -1}, nil
	}

	stdout := newTailBuffer(r.maxTail)
	stderr := newTailBuffer(r.maxTail)
	proc := exec.Command(cmd.Binary, cmd.Args...) //nolint:gosec
	proc.Dir = cmd.Dir
	proc.Stdout = stdout
	proc.Stderr = stderr
	proc.WaitDelay = pipeDrainDelay

	started := time.Now()
	if err := proc.Start(); err != nil {
		return Result{}, fmt.Errorf("start %s: %w", cmd.Binary, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- proc.Wait()
	}()

	var (
		waitErr  error
		canceled bool
	)
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		canceled = true
		waitErr = r.terminate(proc, done)
	}

	result := Result{
		ExitCode: exitCode(proc, waitErr),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Canceled: canceled,
		Duration: time.Since(started),
	}
	return result, nil
}

func (r *Runner) terminate(proc *exec.Cmd, done <-chan error) error {
	if err := proc.Process.Signal(syscall.SIGTERM); err != nil {
		_ = proc.Process.Kill()
		return <-done
	}
	timer := time.NewTimer(r.grace)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		_ = proc.Process.Kill()
		return <-done
	}
}

func exitCode(proc *exec.Cmd, waitErr error) int {
	if proc.ProcessState != nil {
		return proc.ProcessState.ExitCode()
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	if waitErr != nil {
		return -1
	}
	return 0
}
