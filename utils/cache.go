// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/YarKhan02/Workshop-sub000/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds logged-in user sessions and rendered invoices.
	SessionCacheClient *redis.Client
	// WizardCacheClient holds booking wizard sessions.
	WizardCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// GetSessionCacheClient returns the Redis client for user sessions.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB, "Session Cache")
	}
	return SessionCacheClient
}

// GetWizardCacheClient returns the Redis client for wizard sessions.
func GetWizardCacheClient() *redis.Client {
	if WizardCacheClient == nil {
		WizardCacheClient = newRedisClient(config.AppConfig.RedisWizardDB, "Wizard Cache")
	}
	return WizardCacheClient
}
