package utils

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client with connection pooling and verifies
// the connection before returning it. A non-empty password or non-zero db
// overrides whatever the URL carries.
func NewRedisClient(url, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(redisOptions(url, password, db))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", client.Options().Addr, err)
	}

	slog.Info("connected to redis", "addr", client.Options().Addr)
	return client, nil
}

func redisOptions(url, password string, db int) *redis.Options {
	opts, err := redis.ParseURL(url)
	if err != nil {
		// Fall back to a plain host:port address.
		opts = &redis.Options{
			Addr: url,
		}
	}

	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}

	opts.PoolSize = 100
	opts.MinIdleConns = 10
	opts.MaxRetries = 3

	return opts
}

// RedisHealthCheck pings the Redis connection with a short deadline.
func RedisHealthCheck(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}

	return nil
}
