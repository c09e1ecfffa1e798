package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisPersister struct {
	client *redis.Client
	prefix string
}

// NewRedisPersister scopes every key under prefix (e.g. "storefront:cart").
// Values are stored as JSON without expiry; persisted state lives until the
// client clears it.
func NewRedisPersister(client *redis.Client, prefix string) Persister {
	return &redisPersister{
		client: client,
		prefix: prefix,
	}
}

func (r *redisPersister) key(name string) string {
	return r.prefix + ":" + name
}

func (r *redisPersister) Load(ctx context.Context, key string, dest any) (bool, error) {

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {

		if err == redis.Nil {
			return false, nil
		}

		return false, fmt.Errorf("failed to get key %s from redis: %w", key, err)

	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal state for key %s: %w", key, err)
	}

	return true, nil
}

func (r *redisPersister) Save(ctx context.Context, key string, value any) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	err = r.client.Set(ctx, r.key(key), data, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil

}

func (r *redisPersister) Delete(ctx context.Context, key string) error {

	err := r.client.Del(ctx, r.key(key)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", key, err)
	}

	return nil

}
