package redis

import (
	"context"
	"time"

	"user-management/internal/config/env"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedis initializes and returns a Redis client connection
func NewRedis(log *logrus.Logger, config *env.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Address,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,

		// Connection pool settings
		PoolSize:        config.Redis.Pool.Size,
		MinIdleConns:    config.Redis.Pool.MinIdle,
		MaxIdleConns:    config.Redis.Pool.MaxIdle,
		ConnMaxLifetime: time.Duration(config.Redis.Pool.Lifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(config.Redis.Pool.IdleTimeout) * time.Second,

		// Connection timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	log.Info("Redis connection established successfully")
	return rdb
}
