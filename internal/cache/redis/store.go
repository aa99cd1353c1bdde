// Package redis implements the domain.ResultCache contract on a Redis
// key/value store. Values are opaque result bytes addressed by the content
// hash produced by domain.CacheKey, so concurrent identical requests are
// idempotent (last write wins, the value is always fully recomputed).
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/martin/internal/domain"
	"github.com/davidbz/martin/internal/observability"
)

// Store is a Redis-backed result cache.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis result cache adapter.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get retrieves cached result bytes, or domain.ErrCacheMiss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	return data, nil
}

// Set stores result bytes under key for ttl.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	logger := observability.FromContext(ctx)

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Error("cache set failed",
			observability.String("cache_key", key),
			observability.Error(err))
		return fmt.Errorf("cache set failed: %w", err)
	}

	logger.Debug("cached analysis result",
		observability.String("cache_key", key),
		observability.Int("data_size", len(value)),
		observability.Duration("ttl", ttl))
	return nil
}
