package engine

import (
	"context"

	"github.com/stretchr/testify/mock"

	"research-agent/internal/provider"
)

// MockRouter is a mock implementation of Router using testify/mock.
type MockRouter struct {
	mock.Mock
}

func (m *MockRouter) Generate(ctx context.Context, name string, messages []provider.Message) provider.Reply {
	args := m.Called(ctx, name, messages)
	return args.Get(0).(provider.Reply)
}
