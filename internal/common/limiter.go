package common

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether the caller identified by key may perform one more
// request inside the current window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// fixedWindowScript increments the counter and starts the window on the first hit.
const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if tonumber(current) == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisLimiter(addr, password string, db int) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return &RedisLimiter{
		client: client,
		script: redis.NewScript(fixedWindowScript),
	}, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	seconds := int(window.Seconds())
	if seconds < 1 {
		seconds = 1
	}

	count, err := l.script.Run(ctx, l.client, []string{key}, seconds).Int()
	if err != nil {
		return true, err
	}

	return count <= limit, nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
