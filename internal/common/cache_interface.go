package common

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheInterface defines the contract for cache implementations
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	Get(key string) (interface{}, bool)

	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	Close() error
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// NewCache picks a backend by name. The redis backend needs a client.
func NewCache(backend string, client *redis.Client, log *zap.SugaredLogger) (CacheInterface, error) {
	switch backend {
	case "", CacheBackendMemory:
		return NewMemoryCache(10*time.Minute, 20*time.Minute), nil
	case CacheBackendRedis:
		if client == nil {
			return nil, fmt.Errorf("cache backend %q requires a redis client", backend)
		}
		return NewRedisCache(client, log), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
