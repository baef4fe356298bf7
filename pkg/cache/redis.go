package cache

import (
	"context"
	"fmt"
	"time"

	"driveschool-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis creates the redis client used for idempotency records.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return rdb, nil
}
