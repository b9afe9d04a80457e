package config

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisClient is only set when CACHE_BACKEND=redis.
var RedisClient *redis.Client

// InitRedis connects RedisClient using Cfg and pings it.
func InitRedis(ctx context.Context) {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     Cfg.RedisAddr,
		Password: Cfg.RedisPassword,
		DB:       Cfg.RedisDB,
	})

	s, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		Logger.Fatal("Error connecting to Redis", zap.Error(err))
	}
	Logger.Info("Connected to Redis", zap.String("ping", s), zap.String("addr", Cfg.RedisAddr))
}
