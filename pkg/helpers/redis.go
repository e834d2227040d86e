package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient initializes a redis client. It returns nil when addr is
// empty. An unreachable server is only logged: callers fail open.
func NewRedisClient(ctx context.Context, addr, password string, db int, logger *logrus.Logger) *redis.Client {
	if addr == "" {
		logger.Info("redis disabled; rate limiting off")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.WithError(err).WithField("addr", addr).Warn("redis ping failed; rate limiter will fail open")
	}
	return rdb
}
