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

func TestReminderMarks_MarkOncePerTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	m := NewReminderMarks(rdb)
	ctx := context.Background()

	first, err := m.Mark(ctx, 11, 48*time.Hour)
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, 48*time.Hour, mr.TTL("reminder:installment:11"))

	again, err := m.Mark(ctx, 11, 48*time.Hour)
	require.NoError(t, err)
	assert.False(t, again, "second mark within the ttl")

	require.NoError(t, m.Unmark(ctx, 11))
	first, err = m.Mark(ctx, 11, 48*time.Hour)
	require.NoError(t, err)
	assert.True(t, first, "unmarked installments can be announced again")

	mr.FastForward(49 * time.Hour)
	first, err = m.Mark(ctx, 11, 0)
	require.NoError(t, err)
	assert.True(t, first, "expired marks are gone")
	assert.Equal(t, time.Second, mr.TTL("reminder:installment:11"))
}
