// Package retry re-runs an operation with exponential backoff. It knows
// nothing about fare search.
package retry

import (
	"context"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const DefaultAttempts = 3

// Policy builds the delay sequence between attempts.
type Policy func() backoff.BackOff

// Doubling waits initial, 2*initial, 4*initial, ... with no cap and no
// jitter. Doubling(time.Second) waits 2^attempt seconds after attempt n.
func Doubling(initial time.Duration) Policy {
	return func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = initial
		b.Multiplier = 2
		b.RandomizationFactor = 0
		b.MaxInterval = time.Duration(math.MaxInt64)
		b.MaxElapsedTime = 0
		b.Reset()
		return b
	}
}

type config struct {
	policy Policy
	timer  backoff.Timer
	notify backoff.Notify
}

type Option func(*config)

func WithPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithTimer swaps the timer used between attempts; tests pass one that
// fires immediately.
func WithTimer(t backoff.Timer) Option {
	return func(c *config) { c.timer = t }
}

// WithNotify is called after each failed attempt that will be retried.
func WithNotify(fn func(err error, wait time.Duration)) Option {
	return func(c *config) { c.notify = fn }
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do calls op up to attempts times and returns the first success. After the
// last attempt fails its error is returned unchanged. Cancelling ctx stops
// waiting between attempts.
func Do[T any](ctx context.Context, attempts int, op func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	if attempts < 1 {
		attempts = 1
	}

	cfg := config{policy: Doubling(time.Second)}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(cfg.policy(), uint64(attempts-1)), ctx)

	var result T
	err := backoff.RetryNotifyWithTimer(func() error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	}, b, cfg.notify, cfg.timer)
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
