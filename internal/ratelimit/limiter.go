package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

const (
	EndpointToken  = "token"
	EndpointSearch = "search"
)

// Limit is a token bucket shape. A non-positive RPS means unlimited.
type Limit struct {
	RPS   float64
	Burst int
}

var DefaultLimit = Limit{RPS: 5, Burst: 10}

func (l Limit) bucket() *rate.Limiter {
	if l.RPS <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := l.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(l.RPS), burst)
}

// EndpointLimiter paces calls to the fare API with one bucket per endpoint,
// so search traffic cannot starve token renewal.
type EndpointLimiter struct {
	mu       sync.Mutex
	fallback Limit
	buckets  map[string]*rate.Limiter
}

// New returns a limiter that uses fallback for any endpoint without an
// explicit override.
func New(fallback Limit, overrides map[string]Limit) *EndpointLimiter {
	l := &EndpointLimiter{
		fallback: fallback,
		buckets:  make(map[string]*rate.Limiter, len(overrides)),
	}
	for endpoint, lim := range overrides {
		l.buckets[endpoint] = lim.bucket()
	}
	return l
}

func (l *EndpointLimiter) SetEndpointLimit(endpoint string, lim Limit) {
	l.mu.Lock()
	l.buckets[endpoint] = lim.bucket()
	l.mu.Unlock()
}

func (l *EndpointLimiter) bucketFor(endpoint string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[endpoint]
	if !ok {
		b = l.fallback.bucket()
		l.buckets[endpoint] = b
	}
	return b
}

// Wait blocks until endpoint may be called or ctx is done. A nil limiter
// never blocks.
func (l *EndpointLimiter) Wait(ctx context.Context, endpoint string) error {
	if l == nil {
		return nil
	}
	return l.bucketFor(endpoint).Wait(ctx)
}
