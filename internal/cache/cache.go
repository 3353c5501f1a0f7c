package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"research-agent/internal/synthesis"
)

// Cache provides synthesis result caching so repeated summarize calls for
// the same text, mode and provider skip recomputation.
type Cache interface {
	// GetSynthesis retrieves a cached result by key. Returns nil on a miss.
	GetSynthesis(ctx context.Context, key string) (*synthesis.Result, error)

	// SetSynthesis stores a result with TTL.
	SetSynthesis(ctx context.Context, key string, result *synthesis.Result, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}

// Key derives a deterministic cache key from the request triple. Fields are
// separated by NUL so adjacent values can never run together.
func Key(text, mode, provider string) string {
	h := sha256.New()
	h.Write([]byte(mode))
	h.Write([]byte{0})
	h.Write([]byte(provider))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
