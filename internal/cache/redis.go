package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps entries under a namespace so prefix deletes stay scoped.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore connects using a redis:// URL and pings the server.
func NewRedisStore(ctx context.Context, rawURL, namespace string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client, namespace: namespace}, nil
}

func (r *RedisStore) key(k string) string { return r.namespace + k }

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(key), value, ttl).Err()
}

// DeletePrefix walks the keyspace with SCAN.
func (r *RedisStore) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, r.key(prefix)+"*", 200).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 200 {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.client.Del(ctx, batch...).Err()
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
