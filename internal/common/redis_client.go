package common

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisOptions is the subset of connection settings the service exposes.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings. A failed ping is returned alongside the
// client; the pool keeps reconnecting in the background.
func NewRedisClient(ctx context.Context, opts RedisOptions, log *zap.SugaredLogger) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address is empty")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	log.Infow("initializing redis client", "addr", opts.Addr, "db", opts.DB)
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnw("failed to ping redis", "addr", opts.Addr, "error", err)
		return client, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	log.Infow("connected to redis", "addr", opts.Addr)
	return client, nil
}
