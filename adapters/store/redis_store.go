package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farstack/heimdall/ports"
)

// RedisStore is a Redis implementation of the NonceStore interface
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis nonce store
func NewRedisStore(client *redis.Client) ports.NonceStore {
	return &RedisStore{
		client: client,
		prefix: "heimdall:nonce:",
	}
}

// Consume marks a nonce as used. SETNX makes the first-use check atomic
// across instances: exactly one concurrent sign-in with the same nonce
// wins.
func (s *RedisStore) Consume(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	key := s.prefix + nonce

	fresh, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume nonce: %w", err)
	}

	return fresh, nil
}
