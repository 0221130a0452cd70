package runlock

import (
	"errors"
	"path/filepath"
	"testing"

	"vidconv/internal/services"
)

func TestAcquireRejectsSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "vidconv.lock")

	first, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if first.Path() != path {
		t.Fatalf("Path = %q, want %q", first.Path(), path)
	}

	if _, err := Acquire(path); !errors.Is(err, services.ErrBusy) {
		t.Fatalf("expected ErrBusy for second holder, got %v", err)
	}
	held, err := Held(path)
	if err != nil {
		t.Fatalf("Held: %v", err)
	}
	if !held {
		t.Fatal("expected lock to be reported as held")
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	second, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	defer second.Release()
}

func TestHeldWhenFree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vidconv.lock")
	held, err := Held(path)
	if err != nil {
		t.Fatalf("Held: %v", err)
	}
	if held {
		t.Fatal("fresh lock should not be held")
	}
}

func TestAcquireRequiresPath(t *testing.T) {
	if _, err := Acquire("  "); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	var lock *Lock
	if err := lock.Release(); err != nil {
		t.Fatalf("nil Release: %v", err)
	}
}
