package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"research-agent/internal/synthesis"
)

const synthesisKeyPrefix = "synthesis:"

type RedisCache struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed cache and verifies connectivity.
func NewRedis(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetSynthesis(ctx context.Context, key string) (*synthesis.Result, error) {
	data, err := c.client.Get(ctx, synthesisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var result synthesis.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RedisCache) SetSynthesis(ctx context.Context, key string, result *synthesis.Result, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, synthesisKeyPrefix+key, data, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
