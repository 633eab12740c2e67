// Package database connects to the external stores the service depends on.
// Recipes themselves live in memory; Redis only backs rate limiting.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/avast/retry-go"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-catalog/backend/config"
)

const (
	redisConnectAttempts = 3
	redisConnectDelay    = 500 * time.Millisecond
	redisPingTimeout     = 5 * time.Second
)

// RedisOptions converts the configuration into client options. A configured URL takes precedence.
func RedisOptions(cfg *config.Config) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// NewRedisClient creates a Redis client and verifies the connection, retrying a few times
// while the server comes up.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := RedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	err = retry.Do(
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
			defer cancel()
			return client.Ping(ctx).Err()
		},
		retry.Attempts(redisConnectAttempts),
		retry.Delay(redisConnectDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("Redis at %s not ready (attempt %d/%d): %v", opts.Addr, n+1, redisConnectAttempts, err)
		}),
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Successfully connected to Redis at %s", opts.Addr)
	return client, nil
}
