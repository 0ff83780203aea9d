package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRedis_SelectsDB(t *testing.T) {
	s := miniredis.RunT(t)

	c, err := OpenRedis(context.Background(), s.Addr(), 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, 2, c.Options().DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.Set(ctx, "stats:lender:1", "v", 0).Err())

	s.Select(2)
	assert.True(t, s.Exists("stats:lender:1"), "key must land in db 2")
}

func TestOpenRedis_Failure(t *testing.T) {
	_, err := OpenRedis(context.Background(), "not-a-real-host:6379", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-real-host:6379")
}

func TestPing(t *testing.T) {
	s := miniredis.RunT(t)
	c, err := OpenRedis(context.Background(), s.Addr(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ping := Ping(c)
	assert.NoError(t, ping(context.Background()))

	s.Close()
	assert.Error(t, ping(context.Background()))
}
