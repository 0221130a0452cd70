package queue

import "time"

// Item is one queued source file.
type Item struct {
	ID         int64
	Position   int
	SourcePath string
	CreatedAt  time.Time
}
