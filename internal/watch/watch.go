// Package watch feeds video files that appear in a directory into the queue.
//
// Create and write events are debounced per path: a file is queued only after
// it has been quiet for the settle interval, so copies that are still in
// progress are not picked up half written.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"vidconv/internal/api"
	"vidconv/internal/logging"
	"vidconv/internal/presets"
)

// DefaultSettle is how long a file must go without events before it is queued.
const DefaultSettle = 2 * time.Second

const minTick = 50 * time.Millisecond

// ResultFunc receives the outcome of each queued batch entry, in path order.
type ResultFunc func(api.AddFileResult)

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle overrides DefaultSettle. Non-positive values are ignored.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logging.NewComponentLogger(logger, "watch")
	}
}

// Watcher queues new video files from one directory.
type Watcher struct {
	dir    string
	queue  api.QueueAdder
	settle time.Duration
	logger *slog.Logger
}

// New returns a Watcher for dir. dir must be an existing directory.
func New(dir string, queue api.QueueAdder, opts ...Option) (*Watcher, error) {
	if queue == nil {
		return nil, errors.New("watch: queue is required")
	}
	abs, err := filepath.Abs(strings.TrimSpace(dir))
	if err != nil {
		return nil, fmt.Errorf("resolve watch directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch directory: %s is not a directory", abs)
	}
	w := &Watcher{
		dir:    abs,
		queue:  queue,
		settle: DefaultSettle,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Dir returns the absolute directory being watched.
func (w *Watcher) Dir() string {
	return w.dir
}

// Existing returns the video files already in the directory, sorted by name.
func (w *Watcher) Existing() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", w.dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && presets.IsVideoFile(entry.Name()) {
			files = append(files, filepath.Join(w.dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run blocks until ctx is done, queueing settled video files as they appear.
// A store failure stops the watch and is returned.
func (w *Watcher) Run(ctx context.Context, onResult ResultFunc) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if onResult == nil {
		onResult = func(api.AddFileResult) {}
	}

	w.logger.Info("watching for new videos", logging.String("dir", w.dir), logging.Duration("settle", w.settle))

	tick := w.settle / 2
	if tick < minTick {
		tick = minTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	queued := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped", logging.Int("pending", len(pending)))
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.observe(event, pending, queued)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(w.logger, "watch error", "watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "some new files may not be queued"),
			)
		case now := <-ticker.C:
			ready := settled(pending, now, w.settle)
			if len(ready) == 0 {
				continue
			}
			result, err := api.AddFiles(ctx, w.queue, ready)
			if err != nil {
				return err
			}
			for _, item := range result.Items {
				if item.Outcome == api.AddFileQueued {
					queued[item.Path] = struct{}{}
					w.logger.Info("video queued", logging.String(logging.FieldSource, item.Path), logging.Int("position", item.Position))
				}
				onResult(item)
			}
		}
	}
}

func (w *Watcher) observe(event fsnotify.Event, pending map[string]time.Time, queued map[string]struct{}) {
	name := event.Name
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(pending, name)
		delete(queued, name)
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		if !presets.IsVideoFile(name) {
			return
		}
		if _, done := queued[name]; done {
			return
		}
		pending[name] = time.Now()
	}
}

// settled removes and returns the pending paths quiet for at least settle.
func settled(pending map[string]time.Time, now time.Time, settle time.Duration) []string {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= settle {
			ready = append(ready, path)
			delete(pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}
