package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"vidconv/internal/logging"
	"vidconv/internal/presets"
	"vidconv/internal/services"
	"vidconv/internal/transcode"
)

// ErrRunActive is returned when Run is called while another run is in progress.
var ErrRunActive = errors.New("conversion run already active")

// ProgressEvent reports run progress. Fraction is only meaningful when
// Determinate is true.
type ProgressEvent struct {
	Message     string
	Fraction    float64
	Determinate bool
	Done        int
	Total       int
}

// ProgressFunc receives progress events in order on the run goroutine.
type ProgressFunc func(ProgressEvent)

// Transcoder renders a single job.
type Transcoder interface {
	Invoke(ctx context.Context, job transcode.Job) transcode.Outcome
}

// Engine executes conversion runs.
type Engine struct {
	mu         sync.Mutex
	transcoder Transcoder
	logger     *slog.Logger
}

// NewEngine constructs an Engine around the provided transcoder.
func NewEngine(transcoder Transcoder, logger *slog.Logger) *Engine {
	return &Engine{
		transcoder: transcoder,
		logger:     logging.NewComponentLogger(logger, "convert"),
	}
}

// Run converts every path in queue, in order, with cfg. The queue slice is
// copied before the first item starts. Cancelling ctx stops the run at the
// next item boundary, or terminates the in-flight transcode.
func (e *Engine) Run(ctx context.Context, queue []string, outputDir string, cfg presets.Configuration, progress ProgressFunc) (Summary, error) {
	if !e.mu.TryLock() {
		return Summary{}, ErrRunActive
	}
	defer e.mu.Unlock()
	if e.transcoder == nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "convert", "run", "transcoder not configured", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	snapshot := append([]string(nil), queue...)
	summary := Summary{
		RunID:      uuid.NewString(),
		Total:      len(snapshot),
		DiscTarget: cfg.DiscTarget(),
	}
	ctx = services.WithStage(services.WithRunID(ctx, summary.RunID), "convert")
	logger := logging.WithContext(ctx, e.logger)
	logger.Info("conversion run started",
		logging.Int(logging.FieldItemCount, summary.Total),
		logging.String("format", cfg.OutputFormat()),
		logging.Bool("disc_target", summary.DiscTarget),
	)

	started := time.Now()
	plan := transcode.PlanFor(cfg)
	format := cfg.OutputFormat()
	total := summary.Total

	for idx, source := range snapshot {
		if ctx.Err() != nil {
			summary.Notes = append(summary.Notes, canceledNote)
			break
		}

		progress(ProgressEvent{
			Message: fmt.Sprintf("Convertendo %d/%d: %s", summary.Done+1, total, filepath.Base(source)),
			Done:    summary.Done,
			Total:   total,
		})

		itemCtx := services.WithItemIndex(ctx, idx+1)
		itemLogger := logging.WithContext(itemCtx, e.logger)

		if _, err := os.Stat(source); err != nil {
			logging.WarnWithContext(itemLogger, "source missing", "source_missing",
				logging.String(logging.FieldSource, source),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the item from the queue or restore the file"),
				logging.String(logging.FieldImpact, "item counted as a failure; the run continues"),
			)
			summary.Results = append(summary.Results, JobResult{
				Source:  source,
				Status:  JobMissing,
				Message: fmt.Sprintf("FALHA: arquivo nao encontrado - %s", source),
			})
			summary.Done++
			summary.Failed++
			progress(fractionEvent(summary.Done, total))
			continue
		}

		job := transcode.Job{
			Source:      source,
			Destination: Destination(source, outputDir, format),
			Plan:        plan,
		}
		itemStarted := time.Now()
		outcome := e.transcoder.Invoke(itemCtx, job)
		result := JobResult{
			Source:      source,
			Destination: job.Destination,
			Message:     outcome.Message,
			Elapsed:     time.Since(itemStarted),
		}

		if outcome.Status == transcode.Canceled {
			result.Status = JobCanceled
			summary.Results = append(summary.Results, result)
			break
		}
		if outcome.Status == transcode.Succeeded {
			result.Status = JobSucceeded
		} else {
			result.Status = JobFailed
			summary.Failed++
		}
		summary.Results = append(summary.Results, result)
		summary.Done++
		progress(fractionEvent(summary.Done, total))
	}

	summary.Elapsed = time.Since(started)
	logger.Info("conversion run finished",
		logging.Int("succeeded", summary.Succeeded()),
		logging.Int("failed", summary.Failed),
		logging.Bool("canceled", summary.Canceled()),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func fractionEvent(done, total int) ProgressEvent {
	fraction := 0.0
	if total > 0 {
		fraction = float64(done) / float64(total)
	}
	return ProgressEvent{
		Message:     fmt.Sprintf("Convertendo... %d/%d", done, total),
		Fraction:    fraction,
		Determinate: true,
		Done:        done,
		Total:       total,
	}
}
