package preflight

import (
	"context"
	"strings"

	"vidconv/internal/config"
	"vidconv/internal/deps"
	"vidconv/internal/runlock"
	"vidconv/internal/shim"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the directory and lock checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	// Output directory is optional; outputs land next to their sources without it.
	if strings.TrimSpace(cfg.Paths.OutputDir) != "" {
		results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	}
	results = append(results, CheckRunLock(cfg.LockPath()))
	return results
}

// CheckRunLock reports whether another conversion currently holds the run lock.
func CheckRunLock(path string) Result {
	const name = "Run lock"
	held, err := runlock.Held(path)
	switch {
	case err != nil:
		return Result{Name: name, Detail: err.Error()}
	case held:
		return Result{Name: name, Detail: "conversion in progress"}
	default:
		return Result{Name: name, Passed: true, Detail: "idle"}
	}
}

// CheckSystemDeps evaluates the external tools for the given config. Both the
// CLI status command and the api service use this list.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Tools.FFmpeg,
			Description: "Required for conversion",
		},
	})
	return append(statuses, deps.DiscAuthorStatus(ctx, cfg.Tools.DVDAuthor, shim.New(cfg.Tools.Shim, cfg.Tools.ShimWorkdir)))
}
