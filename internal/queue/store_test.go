package queue_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"vidconv/internal/queue"
	"vidconv/internal/services"
	"vidconv/internal/testsupport"
)

func TestAddKeepsInsertionOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	dir := t.TempDir()

	names := []string{"b.mkv", "a.mp4", "c.AVI"}
	for i, name := range names {
		item, err := store.Add(ctx, filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
		if item.Position != i+1 {
			t.Fatalf("Add %s position = %d, want %d", name, item.Position, i+1)
		}
	}

	paths, err := store.Paths(ctx)
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	want := []string{filepath.Join(dir, "b.mkv"), filepath.Join(dir, "a.mp4"), filepath.Join(dir, "c.AVI")}
	if !slices.Equal(paths, want) {
		t.Fatalf("Paths = %q, want %q", paths, want)
	}
}

func TestConcurrentAddsReportDistinctPositions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	dir := t.TempDir()

	const workers = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added = make(map[string]int, workers)
	)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			path := filepath.Join(dir, fmt.Sprintf("clip%d.mp4", i))
			item, err := store.Add(ctx, path)
			if err != nil {
				t.Errorf("Add %s: %v", path, err)
				return
			}
			mu.Lock()
			added[item.SourcePath] = item.Position
			mu.Unlock()
		}()
	}
	wg.Wait()
	if t.Failed() {
		return
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != workers {
		t.Fatalf("List returned %d items, want %d", len(items), workers)
	}
	for _, item := range items {
		if got := added[item.SourcePath]; got != item.Position {
			t.Fatalf("Add reported position %d for %s, List has %d", got, item.SourcePath, item.Position)
		}
	}
}

func TestAddRejectsDuplicates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "movie.mp4")

	if _, err := store.Add(ctx, path); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err := store.Add(ctx, path)
	if !errors.Is(err, queue.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("duplicate should be a validation error, got %v", err)
	}
	if count, _ := store.Count(ctx); count != 1 {
		t.Fatalf("Count = %d, want 1", count)
	}
}

func TestAddRejectsUnsupportedExtensions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for _, name := range []string{"notes.txt", "noext", "  "} {
		if _, err := store.Add(ctx, name); !errors.Is(err, queue.ErrUnsupported) {
			t.Fatalf("Add %q: expected ErrUnsupported, got %v", name, err)
		}
	}
	if _, err := store.Add(ctx, filepath.Join(t.TempDir(), "disc.VOB")); err != nil {
		t.Fatalf("extension match should ignore case: %v", err)
	}
}

func TestAddStoresAbsolutePaths(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	dir := t.TempDir()
	t.Chdir(dir)

	item, err := store.Add(context.Background(), "clip.webm")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !filepath.IsAbs(item.SourcePath) || filepath.Base(item.SourcePath) != "clip.webm" {
		t.Fatalf("unexpected stored path %q", item.SourcePath)
	}
}

func TestRemoveByPosition(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	dir := t.TempDir()
	for _, name := range []string{"one.mp4", "two.mp4", "three.mp4"} {
		if _, err := store.Add(ctx, filepath.Join(dir, name)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	removed, err := store.Remove(ctx, 2)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if filepath.Base(removed.SourcePath) != "two.mp4" || removed.Position != 2 {
		t.Fatalf("unexpected removed item %+v", removed)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || filepath.Base(items[1].SourcePath) != "three.mp4" || items[1].Position != 2 {
		t.Fatalf("positions should close the gap, got %+v", items)
	}

	for _, pos := range []int{0, 3, -1} {
		if _, err := store.Remove(ctx, pos); !errors.Is(err, queue.ErrPosition) {
			t.Fatalf("Remove(%d): expected ErrPosition, got %v", pos, err)
		}
	}
}

func TestClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	dir := t.TempDir()
	for _, name := range []string{"a.mov", "b.flv"} {
		if _, err := store.Add(ctx, filepath.Join(dir, name)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 2 {
		t.Fatalf("Clear removed %d, want 2", removed)
	}
	paths, err := store.Paths(ctx)
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("queue not empty after Clear: %q", paths)
	}
}

func TestQueuePersistsAcrossOpens(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keep.m4v")

	first, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := first.Add(ctx, path); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if second.Path() != cfg.QueueDBPath() {
		t.Fatalf("Path = %q, want %q", second.Path(), cfg.QueueDBPath())
	}
	paths, err := second.Paths(ctx)
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	if len(paths) != 1 || paths[0] != path {
		t.Fatalf("Paths after reopen = %q", paths)
	}
}
