package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// GlobalFeedKey 全站信息流只占用这一个缓存槽位，每页一个 hash field
	GlobalFeedKey     = "feed:global"
	GlobalFeedLockKey = "lock:feed:global"
	DefaultFeedTTL    = 20 * time.Second
)

// 写入某一页；槽位第一次创建时才设置过期时间，之后的写入不续期
var fillScript = redis.NewScript(`
redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
if redis.call("PTTL", KEYS[1]) < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[3])
end
return 1
`)

// FeedCache 全站信息流的整块缓存：没有依赖追踪，写帖子时整体清空
type FeedCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func (c *FeedCache) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultFeedTTL
	}
	return c.TTL
}

// Get 返回渲染好的某一页；ok=false 表示未命中
func (c *FeedCache) Get(ctx context.Context, page int) ([]byte, bool, error) {
	b, err := c.RDB.HGet(ctx, GlobalFeedKey, strconv.Itoa(page)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *FeedCache) Set(ctx context.Context, page int, body []byte) error {
	px := int64(c.ttl() / time.Millisecond)
	return fillScript.Run(ctx, c.RDB, []string{GlobalFeedKey}, strconv.Itoa(page), body, px).Err()
}

// Invalidate 清空整个槽位
func (c *FeedCache) Invalidate(ctx context.Context) error {
	return c.RDB.Del(ctx, GlobalFeedKey).Err()
}
