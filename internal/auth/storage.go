package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists identities in Redis, namespaced per browser session.
type RedisStorage struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStorage returns storage scoped to the given session ID. The TTL
// matches the cookie session lifetime so both expire together.
func NewRedisStorage(client *redis.Client, sessionID string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, prefix: "rag_admin:auth:" + sessionID + ":", ttl: ttl}
}

// Get reads the value at key, returning ErrNoIdentity on a miss.
func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoIdentity
		}
		return nil, err
	}
	return raw, nil
}

// Set writes the value at key.
func (s *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

// Delete removes the value at key. Deleting an absent key is not an error.
func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
