package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReminderMarks records announced installments with SETNX, shared by every
// instance running the reminder job.
type ReminderMarks struct {
	rdb *redis.Client
}

func NewReminderMarks(rdb *redis.Client) *ReminderMarks {
	return &ReminderMarks{rdb: rdb}
}

func reminderKey(installmentID uint64) string {
	return "reminder:installment:" + strconv.FormatUint(installmentID, 10)
}

// Mark reports true the first time an installment is marked within ttl.
func (m *ReminderMarks) Mark(ctx context.Context, installmentID uint64, ttl time.Duration) (bool, error) {
	if ttl < time.Second {
		ttl = time.Second
	}
	return m.rdb.SetNX(ctx, reminderKey(installmentID), 1, ttl).Result()
}

func (m *ReminderMarks) Unmark(ctx context.Context, installmentID uint64) error {
	return m.rdb.Del(ctx, reminderKey(installmentID)).Err()
}
