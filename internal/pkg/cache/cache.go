package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/csalom/stripe-api/internal/pkg/env"
)

// SetupCache connects to the Redis compatible cache server. The returned
// client is usable even when the first ping fails; callers decide whether a
// missing cache is fatal.
func SetupCache(ctx context.Context, cfg *env.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.CacheHost + ":" + cfg.CachePort,
		Password: cfg.CachePassword,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pong, err := client.Ping(pingCtx).Result()
	if err != nil {
		log.Printf("Warning: Could not connect to cache: %v", err)
		return client, err
	}
	log.Printf("Successfully connected to cache: %s", pong)
	return client, nil
}
