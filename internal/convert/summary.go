package convert

import (
	"fmt"
	"strings"
	"time"
)

const (
	canceledNote = "Conversao cancelada pelo usuario."
	discNote     = "Modo DVD: arquivo MPEG-2 gerado (.mpg). Para criar VIDEO_TS com .VOB/.IFO/.BUP, use a autoria de DVD."
)

// JobStatus classifies one queue item's outcome.
type JobStatus int

const (
	JobSucceeded JobStatus = iota
	JobFailed
	JobMissing
	JobCanceled
)

func (s JobStatus) String() string {
	switch s {
	case JobSucceeded:
		return "succeeded"
	case JobFailed:
		return "failed"
	case JobMissing:
		return "missing"
	case JobCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// JobResult records what happened to one queue item.
type JobResult struct {
	Source      string
	Destination string
	Status      JobStatus
	Message     string
	Elapsed     time.Duration
}

// Summary aggregates a run.
type Summary struct {
	RunID string
	// Total is the size of the queue snapshot.
	Total int
	// Done counts items that reached a terminal, non-canceled outcome.
	Done       int
	Failed     int
	Results    []JobResult
	Notes      []string
	DiscTarget bool
	Elapsed    time.Duration
}

// Succeeded returns the number of items converted successfully.
func (s Summary) Succeeded() int {
	return s.Done - s.Failed
}

// Canceled reports whether the run stopped because of cancellation.
func (s Summary) Canceled() bool {
	for _, result := range s.Results {
		if result.Status == JobCanceled {
			return true
		}
	}
	for _, note := range s.Notes {
		if note == canceledNote {
			return true
		}
	}
	return false
}

// Messages returns the per-item messages in queue order followed by run notes.
func (s Summary) Messages() []string {
	messages := make([]string, 0, len(s.Results)+len(s.Notes))
	for _, result := range s.Results {
		messages = append(messages, result.Message)
	}
	return append(messages, s.Notes...)
}

// String renders the user-facing report.
func (s Summary) String() string {
	prefix := "Finalizado."
	if s.Canceled() {
		prefix = "Cancelado."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s Sucesso: %d | Falhas: %d\n\n", prefix, s.Succeeded(), s.Failed)
	b.WriteString(strings.Join(s.Messages(), "\n\n"))
	if s.DiscTarget {
		b.WriteString("\n\n")
		b.WriteString(discNote)
	}
	return b.String()
}
