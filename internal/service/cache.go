package service

import "context"

// GlobalFeedCache 全站信息流缓存槽位，由 redis.FeedCache 实现
type GlobalFeedCache interface {
	Get(ctx context.Context, page int) ([]byte, bool, error)
	Set(ctx context.Context, page int, body []byte) error
	Invalidate(ctx context.Context) error
}

// Locker 缓存重建时的互斥，由 redis.DistLock 实现
type Locker interface {
	Acquire(ctx context.Context, key, token string) (bool, error)
	Release(ctx context.Context, key, token string) error
}
