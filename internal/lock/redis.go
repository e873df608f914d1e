package lock

import (
	"context"
	"fmt"
	"time"

	"auction-market/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix = "auction:lock:"
	defaultRetry       = 20 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker shared by every process pointed at the same redis
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	prefix string
}

// NewRedisLocker creates a RedisLocker. ttl bounds how long a crashed holder keeps the key.
func NewRedisLocker(client *redis.Client, ttl time.Duration, prefix string) *RedisLocker {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		retry:  defaultRetry,
		prefix: prefix,
	}
}

// Lock polls SET NX until the key is acquired or ctx is done
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	if l.ttl <= 0 {
		return nil, fmt.Errorf("invalid lock ttl")
	}
	redisKey := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return func() { l.unlock(redisKey, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlock(redisKey, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
		utils.Warn("failed to release redis lock", map[string]any{"key": redisKey, "error": err.Error()})
	}
}
