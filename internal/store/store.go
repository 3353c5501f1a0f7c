package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

// Record is one archived summarization: the input source, the produced
// summary and insights, and which provider produced them ("offline" when the
// deterministic engine did).
type Record struct {
	ID          uuid.UUID
	Source      string // paper title, filename, or "text"
	Summary     string
	KeyInsights []string
	Provider    string
	CreatedAt   time.Time
}

// Match is one paper found by the alert worker for a subscribed topic.
type Match struct {
	ID      uuid.UUID
	Topic   string
	Title   string
	URL     string
	Summary string
	FoundAt time.Time
}

// Store persists the summary library and alert matches; an external DB
// implementation can replace this.
type Store interface {
	SaveRecord(ctx context.Context, rec Record) (Record, error)
	ListRecords(ctx context.Context, limit int) ([]Record, error)
	SaveMatches(ctx context.Context, matches []Match) error
	ListMatches(ctx context.Context, topic string, limit int) ([]Match, error)
}
