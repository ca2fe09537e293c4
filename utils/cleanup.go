package utils

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// Retry configuration
const maxRetries = 3
const retryDelay = 2 * time.Minute

// Idle upload sessions are discarded after this long
const SessionTTL = 2 * time.Hour

// CleanupExpiredFiles removes a generated export file once it is older than the TTL
func CleanupExpiredFiles(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		err := os.Remove(filePath)
		if err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
		log.Printf("File %s deleted successfully.", filePath)
	}
	return nil
}

// CleanupExpiredCache drops stale reference-data cache entries from Redis
func CleanupExpiredCache(redisClient *redis.Client) error {
	return InvalidateCache("refdata")
}

// CleanupAllExpired handles the cleanup of exported files and Redis cache entries
func CleanupAllExpired(fileTTL time.Duration, redisClient *redis.Client) error {
	files, err := os.ReadDir("./public/files")
	if err != nil {
		return fmt.Errorf("error reading files directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		filePath := fmt.Sprintf("./public/files/%s", file.Name())
		err := CleanupExpiredFiles(filePath, fileTTL)
		if err != nil {
			log.Println("Error cleaning up file:", err)
		}
	}

	if err := CleanupExpiredCache(redisClient); err != nil {
		return fmt.Errorf("error cleaning up cache: %v", err)
	}

	return nil
}

// RunScheduledCleanup runs cleanup daily at 1 AM with retries: expired export
// files, stale cache entries, and idle upload sessions via the evictor callback.
func RunScheduledCleanup(redisClient *redis.Client, evictSessions func(ttl time.Duration) int) {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		log.Println("running scheduled cleanup task...")

		if evictSessions != nil {
			evicted := evictSessions(SessionTTL)
			if evicted > 0 {
				log.Printf("evicted %d idle upload sessions", evicted)
			}
		}

		var retries int
		var cleanupSuccess bool

		for retries < maxRetries {
			err := CleanupAllExpired(24*time.Hour, redisClient)
			if err == nil {
				cleanupSuccess = true
				break
			}
			log.Printf("cleanup failed: %v", err)
			retries++
			time.Sleep(retryDelay)
		}

		if !cleanupSuccess {
			log.Printf("cleanup task failed after %d retries. please check the system.", retries)
		}
	})

	c.Start()

	// Keep the goroutine alive so cron jobs execute
	select {}
}
