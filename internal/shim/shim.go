// Package shim reaches tools that live behind a compatibility launcher, such as
// dvdauthor installed inside WSL while vidconv runs on the Windows side.
//
// Commands are wrapped as `<launcher> sh -lc "<quoted argv>"` and host paths are
// rewritten to the launcher's /mnt/<drive> view before they are passed along.
package shim

import (
	"os/exec"
	"path"
	"path/filepath"
	"strings"
)

// Shim describes a compatibility launcher.
type Shim struct {
	// Command is the launcher executable, e.g. "wsl". Empty disables the shim.
	Command string
	// Workdir is the host directory shim commands are started from.
	Workdir string
}

// New returns a Shim for the given launcher and working directory.
func New(command, workdir string) Shim {
	return Shim{Command: strings.TrimSpace(command), Workdir: strings.TrimSpace(workdir)}
}

// Available reports whether the launcher resolves on PATH.
func (s Shim) Available() bool {
	if s.Command == "" {
		return false
	}
	_, err := exec.LookPath(s.Command)
	return err == nil
}

// Script returns the argv that runs a shell script through the launcher.
func (s Shim) Script(script string) []string {
	return []string{s.Command, "sh", "-lc", script}
}

// Wrap returns the argv that runs argv through the launcher's login shell.
// Every argument is double-quoted so paths with spaces survive the shell.
func (s Shim) Wrap(argv []string) []string {
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		quoted = append(quoted, Quote(arg))
	}
	return s.Script(strings.Join(quoted, " "))
}

// ToolName returns the name used to call binary inside the shim. Host paths
// are meaningless there, so only the base name is kept.
func ToolName(binary string) string {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return binary
	}
	name := path.Base(filepath.ToSlash(strings.ReplaceAll(binary, `\`, "/")))
	return strings.TrimSuffix(name, ".exe")
}

// Quote wraps arg in double quotes for a POSIX shell.
func Quote(arg string) string {
	var b strings.Builder
	b.Grow(len(arg) + 2)
	b.WriteByte('"')
	for _, r := range arg {
		switch r {
		case '"', '\\', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
