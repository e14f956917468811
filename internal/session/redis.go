package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so they survive process restarts and
// can be shared between replicas.  Expiry uses the key TTL; Redis evicts
// expired tokens on its own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore wraps an already-connected client.  A non-positive ttl
// stores tokens without expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, prefix: "session:"}
}

func (s *RedisStore) key(token string) string { return s.prefix + token }

// Issue creates a fresh token and stores token -> username.
func (s *RedisStore) Issue(ctx context.Context, username string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	ttl := s.ttl
	if ttl <= 0 {
		ttl = 0 // redis interprets 0 as no expiry
	}
	if err := s.client.Set(ctx, s.key(token), username, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve looks the token up; a missing key means invalid or expired.
func (s *RedisStore) Resolve(ctx context.Context, token string) (string, error) {
	username, err := s.client.Get(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	return username, nil
}

// Revoke deletes the token key.  Deleting a missing key is a no-op.
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}
