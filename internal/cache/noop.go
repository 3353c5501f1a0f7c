package cache

import (
	"context"
	"time"

	"research-agent/internal/synthesis"
)

// NoOpCache is used when no Redis is configured: all reads miss and all
// writes succeed silently.
type NoOpCache struct{}

func NewNoOp() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetSynthesis(ctx context.Context, key string) (*synthesis.Result, error) {
	return nil, nil
}

func (c *NoOpCache) SetSynthesis(ctx context.Context, key string, result *synthesis.Result, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
