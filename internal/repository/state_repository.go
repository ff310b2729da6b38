package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// StateRepository is the key-value store backing per-user client state:
// notification logs, notification settings, and display preferences.
// Entries have no TTL; they live until overwritten or deleted.
type StateRepository interface {
	// Get returns the value for key, or "" with ok=false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// RedisStateRepository implements StateRepository on a Redis client.
type RedisStateRepository struct {
	rdb *redis.Client
}

// NewRedisStateRepository creates a new RedisStateRepository.
func NewRedisStateRepository(rdb *redis.Client) *RedisStateRepository {
	return &RedisStateRepository{rdb: rdb}
}

// Get retrieves a value; a missing key is not an error.
func (r *RedisStateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

// Set stores a value with no expiry.
func (r *RedisStateRepository) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, key, value, 0).Err()
}

// Delete removes a key. Deleting an absent key is a no-op.
func (r *RedisStateRepository) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}
