// Package visitor persists per-browser key-value state for the web gateway.
// Each visitor is identified by the id carried in the signed browser cookie;
// session identity, locale and challenge references are all independent
// fields of the visitor's record.
package visitor

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Repository stores string fields per visitor id. Absent fields read as
// empty strings, never as errors. All writes persist immediately.
type Repository interface {
	Get(ctx context.Context, id, field string) (string, error)
	// Set writes all given fields in a single call.
	Set(ctx context.Context, id string, fields map[string]string) error
	Delete(ctx context.Context, id string, fields ...string) error
}

const keyPrefix = "visitor:v1:"

// RedisRepository implements Repository on a Redis hash per visitor.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository builds a Redis-backed visitor store. Each write
// refreshes the record's expiry so active visitors never lose state.
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

func (r *RedisRepository) Get(ctx context.Context, id, field string) (string, error) {
	val, err := r.client.HGet(ctx, keyPrefix+id, field).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisRepository) Set(ctx context.Context, id string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	key := keyPrefix + id
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	if err := r.client.HSet(ctx, key, args...).Err(); err != nil {
		return err
	}
	if r.ttl > 0 {
		return r.client.Expire(ctx, key, r.ttl).Err()
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, id string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return r.client.HDel(ctx, keyPrefix+id, fields...).Err()
}
