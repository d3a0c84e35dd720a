package cache

import (
	"context"
	"testing"

	"SmartBetting/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "smartbetting:valuebets:2025-01-15:nba", Key("valuebets", "2025-01-15", "NBA"))
	assert.Equal(t, "smartbetting:valuebets:2025-01-15", Key("valuebets", "", " ", "2025-01-15"))
}

func TestNewDisabledReturnsNoop(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.IsType(t, Noop{}, c)

	var out []string
	hit, err := c.Get(context.Background(), Key("x"), &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Set(context.Background(), Key("x"), []string{"a"}))
	assert.NoError(t, c.Close())
}
