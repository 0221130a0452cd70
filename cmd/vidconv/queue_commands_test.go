package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vidconv/internal/queue"
	"vidconv/internal/services"
)

func TestQueueCommandsLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)
	files := env.videos(t, "first.mp4", "second.mkv", "third.avi")

	out, _, err := runCLI(t, env, append([]string{"queue", "add"}, files...)...)
	if err != nil {
		t.Fatalf("queue add: %v", err)
	}
	if !strings.Contains(out, "Queued #1 first.mp4") || !strings.Contains(out, "Queued #3 third.avi") {
		t.Fatalf("unexpected add output:\n%s", out)
	}

	out, _, err = runCLI(t, env, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	for _, name := range []string{"first.mp4", "second.mkv", "third.avi", "1.0 KiB"} {
		if !strings.Contains(out, name) {
			t.Fatalf("list output missing %q:\n%s", name, out)
		}
	}

	out, _, err = runCLI(t, env, "queue", "remove", "2")
	if err != nil {
		t.Fatalf("queue remove: %v", err)
	}
	if !strings.Contains(out, "Removed #2 second.mkv") {
		t.Fatalf("unexpected remove output: %s", out)
	}

	out, _, err = runCLI(t, env, "queue", "clear")
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 2 items") {
		t.Fatalf("unexpected clear output: %s", out)
	}

	out, _, err = runCLI(t, env, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(out, "Queue is empty") {
		t.Fatalf("expected empty queue, got:\n%s", out)
	}
}

func TestQueueAddReportsSkippedFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	files := env.videos(t, "movie.mp4")
	notes := filepath.Join(env.sourceDir, "notes.txt")
	env.videos(t, "notes.txt")

	out, _, err := runCLI(t, env, "queue", "add", files[0], files[0], notes)
	if err != nil {
		t.Fatalf("queue add: %v", err)
	}
	if !strings.Contains(out, "(already queued)") || !strings.Contains(out, notes+" (unsupported extension)") {
		t.Fatalf("unexpected add output:\n%s", out)
	}

	_, _, err = runCLI(t, env, "queue", "add", notes)
	if err == nil || services.ExitCode(err) != 2 {
		t.Fatalf("expected validation failure when nothing is queued, got %v", err)
	}
}

func TestQueueRemoveRejectsBadPosition(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, arg := range []string{"abc", "1"} {
		_, _, err := runCLI(t, env, "queue", "remove", arg)
		if err == nil || services.ExitCode(err) != 2 {
			t.Fatalf("remove %s: expected validation error, got %v", arg, err)
		}
	}
}

func TestBuildQueueListRowsMarksMissingFiles(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	rows := buildQueueListRows([]queue.Item{{
		Position:   1,
		SourcePath: "/nowhere/clip.mov",
		CreatedAt:  now.Add(-2 * time.Hour),
	}}, now)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0][1] != "clip.mov" || rows[0][2] != "missing" || rows[0][3] != "2 hours ago" || rows[0][4] != "/nowhere" {
		t.Fatalf("unexpected row %q", rows[0])
	}
}
