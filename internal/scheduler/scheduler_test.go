package scheduler

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
}

func (c *countingRefresher) Name() string { return "counting" }

func (c *countingRefresher) Refresh(ctx context.Context) error {
	c.calls.Add(1)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestStartRequiresJobs(t *testing.T) {
	s := NewScheduler(quietLogger())
	assert.Error(t, s.Start())
	assert.False(t, s.IsRunning())
}

func TestScheduleRefreshRejectsBadExpression(t *testing.T) {
	s := NewScheduler(quietLogger())
	assert.Error(t, s.ScheduleRefresh("every minute", &countingRefresher{}))
	assert.Equal(t, 0, s.Jobs())
}

func TestSchedulerLifecycle(t *testing.T) {
	s := NewScheduler(quietLogger())
	target := &countingRefresher{}

	require.NoError(t, s.ScheduleRefresh("@every 10ms", target))
	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.False(t, s.GetNextRun().IsZero())

	assert.Error(t, s.Start())
	assert.Error(t, s.ScheduleRefresh("@every 1s", target))

	assert.Eventually(t, func() bool { return target.calls.Load() > 0 }, 3*time.Second, 20*time.Millisecond)

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.True(t, s.GetNextRun().IsZero())
}
