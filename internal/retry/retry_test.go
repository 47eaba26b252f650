package retry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/faregate/internal/retry"
)

// instantTimer fires immediately and records every requested wait.
type instantTimer struct {
	waits []time.Duration
	c     chan time.Time
}

func newInstantTimer() *instantTimer {
	return &instantTimer{c: make(chan time.Time, 1)}
}

func (t *instantTimer) Start(d time.Duration) {
	t.waits = append(t.waits, d)
	t.c <- time.Time{}
}

func (t *instantTimer) Stop() {}

func (t *instantTimer) C() <-chan time.Time { return t.c }

func TestDo_AlwaysFailing(t *testing.T) {
	timer := newInstantTimer()
	calls := 0

	_, err := retry.Do(context.Background(), 3, func(context.Context) (int, error) {
		calls++
		return 0, fmt.Errorf("attempt %d failed", calls)
	}, retry.WithTimer(timer))

	require.EqualError(t, err, "attempt 3 failed")
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, timer.waits)
}

func TestDo_SucceedsOnThirdAttempt(t *testing.T) {
	timer := newInstantTimer()
	calls := 0

	got, err := retry.Do(context.Background(), 3, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	}, retry.WithTimer(timer))

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDo_BackoffIsUncapped(t *testing.T) {
	timer := newInstantTimer()

	_, _ = retry.Do(context.Background(), 8, func(context.Context) (int, error) {
		return 0, errors.New("down")
	}, retry.WithTimer(timer))

	require.Len(t, timer.waits, 7)
	for i, w := range timer.waits {
		assert.Equal(t, time.Duration(1<<i)*time.Second, w)
	}
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	calls := 0
	sentinel := errors.New("bad request")

	_, err := retry.Do(context.Background(), 3, func(context.Context) (int, error) {
		calls++
		return 0, retry.Permanent(sentinel)
	}, retry.WithTimer(newInstantTimer()))

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestDo_NotifyAndAttemptFloor(t *testing.T) {
	var notified []time.Duration
	calls := 0

	_, err := retry.Do(context.Background(), 0, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("nope")
	}, retry.WithTimer(newInstantTimer()), retry.WithNotify(func(_ error, d time.Duration) {
		notified = append(notified, d)
	}))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, notified)
}

func TestDo_CancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := retry.Do(ctx, 3, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, errors.New("down")
	}, retry.WithPolicy(retry.Doubling(time.Hour)))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
