package tokenstore

import (
	"context"
	"time"

	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "token_used:"

// RedisMarkerStore keeps replay markers as expiring keys. The TTL should
// outlive the longest action token lifetime.
type RedisMarkerStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMarkerStore(client *redis.Client, ttl time.Duration) *RedisMarkerStore {
	return &RedisMarkerStore{client: client, ttl: ttl}
}

func (s *RedisMarkerStore) IsConsumed(ctx context.Context, key shared.MarkerKey) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+key.String()).Result()
	if err != nil {
		return false, errs.Wrap(err, "redis exists")
	}
	return n > 0, nil
}

func (s *RedisMarkerStore) Consume(ctx context.Context, key shared.MarkerKey) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+key.String(), time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, errs.Wrap(err, "redis setnx")
	}
	return ok, nil
}

func (s *RedisMarkerStore) Release(ctx context.Context, key shared.MarkerKey) error {
	if err := s.client.Del(ctx, keyPrefix+key.String()).Err(); err != nil {
		return errs.Wrap(err, "redis del")
	}
	return nil
}
