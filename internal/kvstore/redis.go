package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// defaultKeyPrefix namespaces all store keys in Redis to avoid collisions.
	defaultKeyPrefix = "showshelf:"
)

func init() {
	Register("redis", newRedisStore)
}

// redisStore implements the Store interface using Redis/Valkey.
//
// All values live in a single hash, {prefix}data (field = user key, value = bytes),
// so Len is a plain HLEN and the store never touches keys outside its prefix.
// Entries do not expire.
type redisStore struct {
	client  *redis.Client
	logger  Logger
	dataKey string // hash key, e.g. "showshelf:data"
}

func newRedisStore(cfg ProviderConfig) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Verify connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &redisStore{
		client:  client,
		logger:  cfg.Logger,
		dataKey: prefix + "data",
	}, nil
}

func (r *redisStore) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.HGet(ctx, r.dataKey, key).Bytes()
	if err != nil {
		// redis.Nil means the field doesn't exist — a normal miss.
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		r.logError("redis store Get failed", err)
		return nil, false, err
	}
	return val, true, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.HSet(ctx, r.dataKey, key, value).Err(); err != nil {
		r.logError("redis store Set failed", err)
		return err
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.HDel(ctx, r.dataKey, key).Err(); err != nil {
		r.logError("redis store Delete failed", err)
		return err
	}
	return nil
}

func (r *redisStore) Contains(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.HExists(ctx, r.dataKey, key).Result()
	if err != nil {
		r.logError("redis store Contains failed", err)
		return false, err
	}
	return ok, nil
}

func (r *redisStore) Len(ctx context.Context) (int, error) {
	n, err := r.client.HLen(ctx, r.dataKey).Result()
	if err != nil {
		r.logError("redis store Len failed", err)
		return 0, err
	}
	return int(n), nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
