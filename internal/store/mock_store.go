package store

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) SaveRecord(ctx context.Context, rec Record) (Record, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(Record), args.Error(1)
}

func (m *MockStore) ListRecords(ctx context.Context, limit int) ([]Record, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockStore) SaveMatches(ctx context.Context, matches []Match) error {
	args := m.Called(ctx, matches)
	return args.Error(0)
}

func (m *MockStore) ListMatches(ctx context.Context, topic string, limit int) ([]Match, error) {
	args := m.Called(ctx, topic, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Match), args.Error(1)
}
