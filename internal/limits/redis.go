package limits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient is the subset of *redis.Client the store needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps the counter record as a single string key.
type RedisStore struct {
	client RedisClient
	key    string
	logger *zap.Logger
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisStore(client RedisClient, opts ...Option) *RedisStore {
	o := newOptions(opts)
	return &RedisStore{client: client, key: "storefront:" + o.record, logger: o.logger}
}

func (s *RedisStore) Get(ctx context.Context) (Counts, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Counts{}, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return decodeOrEmpty(raw, s.logger, s.key), nil
}

// Increment is a read-modify-write; callers serialize access to the store.
func (s *RedisStore) Increment(ctx context.Context, productID string) error {
	counts, err := s.Get(ctx)
	if err != nil {
		return err
	}
	counts[productID]++
	return s.put(ctx, counts)
}

func (s *RedisStore) Reset(ctx context.Context) error {
	return s.put(ctx, Counts{})
}

func (s *RedisStore) put(ctx context.Context, counts Counts) error {
	body, err := Encode(counts)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, body, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
