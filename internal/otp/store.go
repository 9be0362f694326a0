package otp

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps at most one pending code digest per phone number.
type Store interface {
	Put(ctx context.Context, phone, digest string, ttl time.Duration) error
	// Take removes and returns the pending digest for phone, so a code can
	// only be checked once. ok is false when no code is pending.
	Take(ctx context.Context, phone string) (digest string, ok bool, err error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(phone string) string {
	return "otp:" + phone
}

func (s *RedisStore) Put(ctx context.Context, phone, digest string, ttl time.Duration) error {
	return s.client.Set(ctx, key(phone), digest, ttl).Err()
}

func (s *RedisStore) Take(ctx context.Context, phone string) (string, bool, error) {
	digest, err := s.client.GetDel(ctx, key(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return digest, true, nil
}
