package redis

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		logrus.Warn("Redis unavailable, token revocation disabled: ", err)
		Client = nil
		return
	}
	logrus.Info("Connected to Redis")
}

// BlacklistToken revokes a JWT until it would have expired anyway.
func BlacklistToken(token string, ttl time.Duration) error {
	if Client == nil || ttl <= 0 {
		return nil
	}
	return Client.Set(Ctx, "blacklist:"+token, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether the token was revoked by a logout.
func IsTokenBlacklisted(token string) bool {
	if Client == nil {
		return false
	}
	n, err := Client.Exists(Ctx, "blacklist:"+token).Result()
	return err == nil && n > 0
}
