package api

import (
	"context"
	"errors"
	"os"

	"vidconv/internal/queue"
)

// QueueAdder captures the store operation needed to enqueue files.
type QueueAdder interface {
	Add(ctx context.Context, sourcePath string) (*queue.Item, error)
}

type AddFileOutcome string

const (
	AddFileQueued      AddFileOutcome = "queued"
	AddFileDuplicate   AddFileOutcome = "duplicate"
	AddFileUnsupported AddFileOutcome = "unsupported"
	AddFileMissing     AddFileOutcome = "missing"
)

type AddFileResult struct {
	Path     string         `json:"path"`
	Outcome  AddFileOutcome `json:"outcome"`
	Position int            `json:"position,omitempty"`
}

type AddFilesResult struct {
	QueuedCount int             `json:"queuedCount"`
	Items       []AddFileResult `json:"items"`
}

// AddFiles enqueues each path in order. Per-file rejections become outcomes;
// only store failures abort the batch.
func AddFiles(ctx context.Context, store QueueAdder, paths []string) (AddFilesResult, error) {
	result := AddFilesResult{Items: make([]AddFileResult, 0, len(paths))}
	for _, path := range paths {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			result.Items = append(result.Items, AddFileResult{Path: path, Outcome: AddFileMissing})
			continue
		}
		item, err := store.Add(ctx, path)
		switch {
		case errors.Is(err, queue.ErrDuplicate):
			result.Items = append(result.Items, AddFileResult{Path: path, Outcome: AddFileDuplicate})
		case errors.Is(err, queue.ErrUnsupported):
			result.Items = append(result.Items, AddFileResult{Path: path, Outcome: AddFileUnsupported})
		case err != nil:
			return AddFilesResult{}, err
		default:
			result.QueuedCount++
			result.Items = append(result.Items, AddFileResult{Path: item.SourcePath, Outcome: AddFileQueued, Position: item.Position})
		}
	}
	return result, nil
}
