package api

import "vidconv/internal/services"

// PreconditionError is a user-facing reason an operation cannot start.
type PreconditionError struct {
	Message string
	Kind    error
}

func (e *PreconditionError) Error() string { return e.Message }

func (e *PreconditionError) Unwrap() error { return e.Kind }

var (
	// ErrFFmpegMissing is returned when the configured ffmpeg does not resolve.
	ErrFFmpegMissing = &PreconditionError{
		Message: "Instale o FFmpeg e adicione ao PATH para converter.",
		Kind:    services.ErrConfiguration,
	}
	// ErrEmptyQueue is returned when a conversion is requested with nothing queued.
	ErrEmptyQueue = &PreconditionError{
		Message: "Adicione videos na fila antes de converter.",
		Kind:    services.ErrValidation,
	}
)
