// Package deps reports which external tools vidconv can reach.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"vidconv/internal/shim"
)

const probeTimeout = 10 * time.Second

// Requirement defines an external dependency vidconv relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch {
		case cmd == "":
			status.Detail = "command not configured"
		case !ProbeTool(cmd):
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		default:
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}

// ProbeTool reports whether name resolves to an executable.
func ProbeTool(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}

// ProbeDiscAuthor reports whether the disc authoring tool is reachable, either
// natively or through the shim. Probe failures count as unavailable.
func ProbeDiscAuthor(ctx context.Context, binary string, sh shim.Shim) bool {
	if ProbeTool(binary) {
		return true
	}
	return probeThroughShim(ctx, binary, sh)
}

// DiscAuthorStatus describes how the disc authoring tool is reached.
func DiscAuthorStatus(ctx context.Context, binary string, sh shim.Shim) Status {
	status := Status{
		Name:        "dvdauthor",
		Command:     strings.TrimSpace(binary),
		Description: "Builds VIDEO_TS from disc-target conversions",
		Optional:    true,
	}
	switch {
	case ProbeTool(binary):
		status.Available = true
	case probeThroughShim(ctx, binary, sh):
		status.Available = true
		status.Detail = fmt.Sprintf("via %s", sh.Command)
	case sh.Available():
		status.Detail = fmt.Sprintf("not found natively or inside %s", sh.Command)
	default:
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
	}
	return status
}

func probeThroughShim(ctx context.Context, binary string, sh shim.Shim) bool {
	if !sh.Available() {
		return false
	}
	name := shim.ToolName(binary)
	if name == "" {
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	argv := sh.Script(fmt.Sprintf("command -v %s >/dev/null 2>&1", shim.Quote(name)))
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec
	if sh.Workdir != "" {
		cmd.Dir = sh.Workdir
	}
	return cmd.Run() == nil
}
