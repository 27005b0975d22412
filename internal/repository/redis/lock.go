package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultLockTTL = 300 * time.Millisecond

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`)

// DistLock 简单的 SET NX 锁，token 防止误删别人的锁
type DistLock struct {
	RDB *redis.Client
	TTL time.Duration
}

func (l *DistLock) Acquire(ctx context.Context, key, token string) (bool, error) {
	ttl := l.TTL
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return l.RDB.SetNX(ctx, key, token, ttl).Result()
}

// Release 用lua保证原子性
func (l *DistLock) Release(ctx context.Context, key, token string) error {
	return releaseScript.Run(ctx, l.RDB, []string{key}, token).Err()
}
