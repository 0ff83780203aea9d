package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetOutput(io.Discard)
	return log, hook
}

func TestRegister_InvalidSpec(t *testing.T) {
	log, hook := quietLogger()
	s := New(log)

	err := s.Register(context.Background(), "not a cron spec", "reminders", func(context.Context) error { return nil })
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestRegister_RunsAndLogsFailures(t *testing.T) {
	log, hook := quietLogger()
	s := New(log)

	var runs atomic.Int32
	err := s.Register(context.Background(), "@every 1s", "reminders", func(context.Context) error {
		runs.Add(1)
		return errors.New("broker down")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	<-s.Stop().Done()

	var failed bool
	for _, e := range hook.AllEntries() {
		if e.Message == "scheduled job failed" && e.Data["job"] == "reminders" {
			failed = true
		}
	}
	assert.True(t, failed, "job error should be logged")
}
