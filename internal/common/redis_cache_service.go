package common

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisCacheTimeout = time.Second

// RedisCache implements CacheInterface on Redis. Values round-trip through
// JSON, so numbers come back as float64 and structs as maps.
type RedisCache struct {
	client *redis.Client
	prefix string
	log    *zap.SugaredLogger
}

var _ CacheInterface = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client, log *zap.SugaredLogger) *RedisCache {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &RedisCache{client: client, prefix: "ecofly:cache:", log: log}
}

func (r *RedisCache) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), redisCacheTimeout)
}

func (r *RedisCache) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		r.log.Warnw("redis cache: failed to marshal value", "key", key, "error", err)
		return
	}

	ctx, cancel := r.ctx()
	defer cancel()
	if err := r.client.Set(ctx, r.prefix+key, data, duration).Err(); err != nil {
		r.log.Warnw("redis cache: failed to set key", "key", key, "error", err)
	}
}

func (r *RedisCache) Get(key string) (interface{}, bool) {
	ctx, cancel := r.ctx()
	defer cancel()

	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		r.log.Warnw("redis cache: failed to get key", "key", key, "error", err)
		return nil, false
	}

	var result interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		r.log.Warnw("redis cache: failed to unmarshal value", "key", key, "error", err)
		return nil, false
	}
	return result, true
}

func (r *RedisCache) Delete(key string) {
	ctx, cancel := r.ctx()
	defer cancel()
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		r.log.Warnw("redis cache: failed to delete key", "key", key, "error", err)
	}
}

func (r *RedisCache) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error),
) (interface{}, error) {
	if val, found := r.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}
	r.Set(key, val, duration)
	return val, nil
}

// Close is a no-op; the client is shared with the render stream and closed
// by its owner.
func (r *RedisCache) Close() error {
	return nil
}
