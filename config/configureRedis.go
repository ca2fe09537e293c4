package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// InitRedisServer connects the shared client used for reference-data caching
// and export cleanup. A dead Redis is fatal at startup rather than at the
// first cache miss.
func InitRedisServer(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: GetEnv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}
