package cache

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/redis"

	"github.com/csalom/stripe-api/internal/pkg/env"
)

// limiterDatabase keeps rate limiter counters apart from locks in DB 0.
const limiterDatabase = 1

// NewLimiterStorage returns a Redis backed fiber.Storage for the rate limiter.
func NewLimiterStorage(cfg *env.Config) (fiber.Storage, error) {
	port, err := strconv.Atoi(cfg.CachePort)
	if err != nil {
		return nil, err
	}

	return redis.New(redis.Config{
		Host:     cfg.CacheHost,
		Port:     port,
		Password: cfg.CachePassword,
		Database: limiterDatabase,
		Reset:    false,
	}), nil
}
