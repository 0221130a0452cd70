package transcode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"vidconv/internal/logging"
	"vidconv/internal/process"
)

const unknownFailure = "Erro desconhecido no FFmpeg."

// Status classifies how a transcode ended.
type Status int

const (
	Succeeded Status = iota
	Failed
	Canceled
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Job is one source rendered to one destination.
type Job struct {
	Source      string
	Destination string
	Plan        RenderPlan
}

// Outcome is the result of a single invocation.
type Outcome struct {
	Status  Status
	Message string
}

// Option configures the runner.
type Option func(*Runner)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec process.Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.NewComponentLogger(logger, "transcode")
	}
}

// Runner executes transcode jobs with ffmpeg.
type Runner struct {
	binary string
	exec   process.Executor
	logger *slog.Logger
}

// New constructs a Runner. grace bounds how long a canceled ffmpeg may take
// to exit before it is killed.
func New(binary string, grace time.Duration, opts ...Option) (*Runner, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	runner := &Runner{
		binary: binary,
		exec:   process.NewRunner(grace),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner, nil
}

// Invoke renders job and blocks until ffmpeg exits or ctx is canceled.
func (r *Runner) Invoke(ctx context.Context, job Job) Outcome {
	name := filepath.Base(job.Source)
	cmd := process.Command{Binary: r.binary, Args: BuildArgs(job.Source, job.Destination, job.Plan)}
	logger := logging.WithContext(ctx, r.logger)
	logger.Debug("ffmpeg starting", logging.String("command", cmd.String()))

	res, err := r.exec.Run(ctx, cmd)
	if err != nil {
		logging.ErrorWithContext(logger, "ffmpeg could not start", "transcode_start_failed",
			logging.String(logging.FieldSource, job.Source),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check tools.ffmpeg or VIDCONV_FFMPEG"),
		)
		return Outcome{Status: Failed, Message: failureMessage(name, err.Error())}
	}

	switch {
	case res.Canceled:
		logger.Info("ffmpeg canceled", logging.String(logging.FieldSource, job.Source), logging.Duration("elapsed", res.Duration))
		return Outcome{Status: Canceled, Message: fmt.Sprintf("CANCELADO: %s", name)}
	case res.ExitCode == 0:
		logger.Info("ffmpeg finished",
			logging.String(logging.FieldSource, job.Source),
			logging.String(logging.FieldTarget, job.Destination),
			logging.Duration("elapsed", res.Duration),
		)
		return Outcome{Status: Succeeded, Message: fmt.Sprintf("OK: %s", job.Destination)}
	default:
		logging.WarnWithContext(logger, "ffmpeg failed", "transcode_failed",
			logging.String(logging.FieldSource, job.Source),
			logging.Int("exit_code", res.ExitCode),
			logging.String(logging.FieldImpact, "item counted as a failure; the run continues"),
		)
		return Outcome{Status: Failed, Message: failureMessage(name, res.Diagnostic())}
	}
}

func failureMessage(name, diagnostic string) string {
	diagnostic = strings.TrimSpace(diagnostic)
	if diagnostic == "" {
		diagnostic = unknownFailure
	}
	return fmt.Sprintf("FALHA: %s\n%s", name, diagnostic)
}
