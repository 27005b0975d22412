package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestFeedCacheMissThenHit(t *testing.T) {
	_, rdb := newTestRedis(t)
	c := &FeedCache{RDB: rdb, TTL: time.Minute}
	ctx := context.Background()

	_, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, 1, []byte(`{"page":1}`)))
	body, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"page":1}`, string(body))

	_, ok, err = c.Get(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFeedCacheInvalidateClearsEveryPage(t *testing.T) {
	_, rdb := newTestRedis(t)
	c := &FeedCache{RDB: rdb, TTL: time.Minute}
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, 1, []byte("one")))
	require.NoError(t, c.Set(ctx, 2, []byte("two")))

	require.NoError(t, c.Invalidate(ctx))

	for _, page := range []int{1, 2} {
		_, ok, err := c.Get(ctx, page)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestFeedCacheExpiryIsNotExtendedByLaterFills(t *testing.T) {
	mr, rdb := newTestRedis(t)
	c := &FeedCache{RDB: rdb, TTL: 20 * time.Second}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, []byte("one")))
	mr.FastForward(15 * time.Second)
	require.NoError(t, c.Set(ctx, 2, []byte("two")))
	mr.FastForward(6 * time.Second)

	_, ok, err := c.Get(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok, "the whole slot expires with the first fill")
}

func TestDistLock(t *testing.T) {
	_, rdb := newTestRedis(t)
	l := &DistLock{RDB: rdb, TTL: time.Second}
	ctx := context.Background()

	got, err := l.Acquire(ctx, "lock:x", "a")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = l.Acquire(ctx, "lock:x", "b")
	require.NoError(t, err)
	assert.False(t, got)

	// someone else's token does not release it
	require.NoError(t, l.Release(ctx, "lock:x", "b"))
	got, err = l.Acquire(ctx, "lock:x", "b")
	require.NoError(t, err)
	assert.False(t, got)

	require.NoError(t, l.Release(ctx, "lock:x", "a"))
	got, err = l.Acquire(ctx, "lock:x", "b")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestTokenRepository(t *testing.T) {
	_, rdb := newTestRedis(t)
	r := &TokenRepository{RDB: rdb, TTL: time.Minute}
	ctx := context.Background()

	_, err := r.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, r.Add(ctx, 1, "tok"))
	tok, err := r.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
	require.NoError(t, r.Extend(ctx, 1))

	require.NoError(t, r.Delete(ctx, 1))
	_, err = r.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
