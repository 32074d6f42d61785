package httpcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps cached responses in Redis with native TTL handling, for
// callers that already run Redis and prefer it over the embedded file.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisStore wraps an existing Redis client. The prefix namespaces the
// cache keys.
func NewRedisStore(client *redis.Client, keyPrefix string, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, keyPrefix: keyPrefix, logger: logger}, nil
}

func (s *RedisStore) key(signature string) string {
	return s.keyPrefix + signature
}

func (s *RedisStore) Get(ctx context.Context, signature string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.key(signature)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}
	s.logger.Debug("Cache hit", zap.String("signature", signature))
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, signature string, body []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(signature), body, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	s.logger.Debug("Closing Redis cache")
	return s.client.Close()
}
