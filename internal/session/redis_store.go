package session

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the credential slot under a single Redis key.
// Useful when the demo service runs in multiple replicas that should see
// the same slot.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store. Key may be empty.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "authToken"
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Get(ctx context.Context) (string, error) {
	v, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrNoCredential
		}
		return "", err
	}
	return v, nil
}

func (r *RedisStore) Set(ctx context.Context, credential string) error {
	// No TTL here: expiry is carried inside the credential and enforced by
	// the controller on resume.
	return r.client.Set(ctx, r.key, credential, 0).Err()
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
