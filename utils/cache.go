// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"ruma/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient holds conversation sessions when SESSION_BACKEND=redis.
var SessionCacheClient *redis.Client

// InitSessionCache connects the Redis client used for conversation sessions.
func InitSessionCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis (sessions): %w", err)
	}
	SessionCacheClient = client
	return nil
}

// GetSessionCacheClient returns the session client, or nil when it was never initialised.
func GetSessionCacheClient() *redis.Client {
	return SessionCacheClient
}
