package ports

import (
	"context"
	"time"
)

// JournalEntry is the record of one finished invocation.
type JournalEntry struct {
	ID        string
	Tool      string
	Arguments map[string]any
	Outcome   string
	Message   string
	Duration  time.Duration
	At        time.Time
}

// InvocationJournal appends invocation records to an external log.
type InvocationJournal interface {
	Record(ctx context.Context, entry JournalEntry) error
}
