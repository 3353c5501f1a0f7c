package provider

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock implementation of Generator using testify/mock.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, messages []Message) Reply {
	args := m.Called(ctx, messages)
	return args.Get(0).(Reply)
}
