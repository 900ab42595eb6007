package names

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
)

const keyPrefix = "radar:name:"

// RedisCache stores names in Redis so several processes share lookups.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to addr and pings it.
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to redis", logger.String("addr", addr))
	return &RedisCache{client: rdb}, nil
}

func (r *RedisCache) Get(ctx context.Context, code string) (string, bool, error) {
	name, err := r.client.Get(ctx, keyPrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (r *RedisCache) Set(ctx context.Context, code, name string, ttl time.Duration) error {
	return r.client.Set(ctx, keyPrefix+code, name, ttl).Err()
}

// Close releases the connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
