package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisURL is used when no URL is configured.
const DefaultRedisURL = "redis://localhost:6379/0"

// RedisStore keeps values as plain Redis strings under a key prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOptions parses url into client options, defaulting to DefaultRedisURL.
func RedisOptions(url string) (*redis.Options, error) {
	if url == "" {
		url = DefaultRedisURL
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return opts, nil
}

// OpenRedis connects to Redis and verifies the connection with PING.
func OpenRedis(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := RedisOptions(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis %s: %w", opts.Addr, err)
	}
	return NewRedisStore(client, prefix), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Get returns the value stored under key.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading key %s: %w", key, err)
	}
	return data, nil
}

// Set writes value under key with no expiry.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}

// Keys scans for all keys under the prefix.
func (r *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
