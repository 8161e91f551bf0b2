package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string
	Count int
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, time.Minute), mr
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var out payload
	assert.False(t, c.Get(ctx, "k", &out))

	c.Set(ctx, "k", payload{Name: "oil change", Count: 3})

	require.True(t, c.Get(ctx, "k", &out))
	assert.Equal(t, payload{Name: "oil change", Count: 3}, out)
}

func TestCache_Expires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", payload{Name: "x"})
	mr.FastForward(2 * time.Minute)

	var out payload
	assert.False(t, c.Get(ctx, "k", &out))
}

func TestCache_Delete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, DealershipConfigKey(7), payload{Name: "cfg"})
	assert.True(t, mr.Exists(FullKey(DealershipConfigKey(7))))

	require.NoError(t, c.Delete(ctx, DealershipConfigKey(7)))
	assert.False(t, mr.Exists(FullKey(DealershipConfigKey(7))))
}

func TestCache_NilIsMiss(t *testing.T) {
	var c *Cache
	var out payload

	assert.False(t, c.Get(context.Background(), "k", &out))
	assert.NotPanics(t, func() { c.Set(context.Background(), "k", out) })
	assert.NoError(t, c.Delete(context.Background(), "k"))
}

func TestCache_RedisDownIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	var out payload
	assert.False(t, c.Get(context.Background(), "k", &out))
}
