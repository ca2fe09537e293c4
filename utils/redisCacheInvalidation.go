package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Initialize Redis client
var rdb = redis.NewClient(&redis.Options{
	Addr:     os.Getenv("REDIS_ADDRESS"),
	Password: "",
	DB:       0,
})

// InvalidateCache invalidates all cached keys for the given resource type
// (e.g. "refdata" after a category or organizer write)
func InvalidateCache(resourceType string) error {
	// Use SCAN instead of KEYS for better performance in production
	pattern := fmt.Sprintf("%s:*", resourceType)
	iter := rdb.Scan(context.Background(), 0, pattern, 0).Iterator()

	for iter.Next(context.Background()) {
		key := iter.Val()
		err := rdb.Del(context.Background(), key).Err()
		if err != nil {
			return fmt.Errorf("failed to delete key %s: %v", key, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}

	return nil
}

// InvalidateCacheAsync invalidates the cache for a resource type without
// blocking the caller
func InvalidateCacheAsync(resourceType string) {
	go func() {
		err := InvalidateCache(resourceType)
		if err != nil {
			log.Printf("Cache invalidation failed for resource type '%s': %v", resourceType, err)
		}
	}()
}
