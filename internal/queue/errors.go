package queue

import (
	"errors"
	"strings"

	"vidconv/internal/services"
)

var (
	// ErrDuplicate is returned when a source path is already queued.
	ErrDuplicate = errors.New("source already queued")
	// ErrUnsupported is returned for files whose extension is not a known video container.
	ErrUnsupported = errors.New("unsupported video file")
	// ErrPosition is returned when a queue position does not exist.
	ErrPosition = errors.New("queue position out of range")
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	// SQLITE_CONSTRAINT_UNIQUE
	if errors.As(err, &coder) && coder.Code() == 2067 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func validationError(operation, message string, marker error) error {
	return services.Wrap(services.ErrValidation, "queue", operation, message, marker)
}
