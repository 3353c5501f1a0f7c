package store

import (
	"context"

	"github.com/google/uuid"
)

// NoOpStore is used when no database is configured. Writes succeed and are
// discarded; reads return empty results.
type NoOpStore struct{}

func NewNoOp() *NoOpStore {
	return &NoOpStore{}
}

func (s *NoOpStore) SaveRecord(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return rec, nil
}

func (s *NoOpStore) ListRecords(ctx context.Context, limit int) ([]Record, error) {
	return nil, nil
}

func (s *NoOpStore) SaveMatches(ctx context.Context, matches []Match) error {
	return nil
}

func (s *NoOpStore) ListMatches(ctx context.Context, topic string, limit int) ([]Match, error) {
	return nil, nil
}
