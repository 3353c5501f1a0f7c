package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client using testify/mock.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Search(ctx context.Context, topic string, maxResults int) ([]Paper, error) {
	args := m.Called(ctx, topic, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Paper), args.Error(1)
}
