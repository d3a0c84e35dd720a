package cache

import (
	"context"
	"testing"
	"time"

	"SmartBetting/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Date  string   `json:"date"`
	Items []string `json:"items"`
}

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisGetSet(t *testing.T) {
	c, mr := newTestRedis(t, time.Minute)
	ctx := context.Background()
	key := Key("valuebets", "2025-01-15")

	var out payload
	hit, err := c.Get(ctx, key, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, key, payload{Date: "2025-01-15", Items: []string{"a", "b"}}))
	assert.Equal(t, time.Minute, mr.TTL(key))

	hit, err = c.Get(ctx, key, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Date: "2025-01-15", Items: []string{"a", "b"}}, out)

	mr.FastForward(time.Minute + time.Second)
	hit, err = c.Get(ctx, key, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCorruptPayload(t *testing.T) {
	c, mr := newTestRedis(t, time.Minute)
	key := Key("valuebets", "broken")
	require.NoError(t, mr.Set(key, "{not json"))

	var out payload
	hit, err := c.Get(context.Background(), key, &out)
	assert.False(t, hit)
	assert.ErrorContains(t, err, "解码缓存")
}

func TestRedisSetUnencodable(t *testing.T) {
	c, mr := newTestRedis(t, time.Minute)
	key := Key("valuebets", "chan")

	assert.Error(t, c.Set(context.Background(), key, make(chan int)))
	assert.False(t, mr.Exists(key))
}

func TestNewEnabled(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := New(context.Background(), config.RedisConfig{Enabled: true, Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, c)
	require.NoError(t, c.Close())

	addr := mr.Addr()
	mr.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = New(ctx, config.RedisConfig{Enabled: true, Addr: addr})
	assert.ErrorContains(t, err, "连接 Redis 失败")
}
