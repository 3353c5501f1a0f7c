package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"research-agent/internal/synthesis"
)

// MockCache is a mock implementation of Cache using testify/mock.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetSynthesis(ctx context.Context, key string) (*synthesis.Result, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*synthesis.Result), args.Error(1)
}

func (m *MockCache) SetSynthesis(ctx context.Context, key string, result *synthesis.Result, ttl time.Duration) error {
	args := m.Called(ctx, key, result, ttl)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
