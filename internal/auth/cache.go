package auth

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dharmasatrya/faregate/internal/metrics"
	"github.com/dharmasatrya/faregate/internal/models"
)

// Fetcher performs one token request against the fare API. IssuedAt on the
// returned credential is ignored; the cache stamps it.
type Fetcher interface {
	FetchToken(ctx context.Context) (Credential, error)
}

// TokenCache holds the process-wide credential. Callers that find it stale
// at the same moment each fetch; the last one to finish wins. Credentials
// are swapped whole and never mutated.
type TokenCache struct {
	fetcher Fetcher
	clock   Clock
	current atomic.Pointer[Credential]
	metrics metrics.Recorder
	log     zerolog.Logger
}

type Option func(*TokenCache)

func WithClock(c Clock) Option {
	return func(tc *TokenCache) { tc.clock = c }
}

func WithMetrics(m metrics.Recorder) Option {
	return func(tc *TokenCache) { tc.metrics = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(tc *TokenCache) { tc.log = l }
}

func NewTokenCache(fetcher Fetcher, opts ...Option) *TokenCache {
	tc := &TokenCache{
		fetcher: fetcher,
		clock:   SystemClock(),
		metrics: metrics.Nop{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

// Token returns a bearer token, fetching a fresh one when the cached
// credential is missing or inside the safety margin. Fetch failures are
// not retried here.
func (tc *TokenCache) Token(ctx context.Context) (string, error) {
	now := tc.clock.Now()
	if cred := tc.current.Load(); cred != nil && cred.UsableAt(now) {
		tc.metrics.RecordTokenCacheHit()
		return cred.AccessToken, nil
	}

	cred, err := tc.fetcher.FetchToken(ctx)
	if err != nil {
		tc.metrics.RecordTokenFetch(false)
		var cfgErr *models.ConfigurationError
		var authErr *models.AuthError
		if errors.As(err, &cfgErr) || errors.As(err, &authErr) {
			return "", err
		}
		return "", &models.AuthError{Err: err}
	}
	tc.metrics.RecordTokenFetch(true)

	cred.IssuedAt = now
	tc.current.Store(&cred)

	tc.log.Info().
		Int("expires_in", cred.ExpiresIn).
		Time("expires_at", cred.ExpiresAt()).
		Msg("fare api token renewed")

	return cred.AccessToken, nil
}

// Current returns the cached credential, if any, regardless of freshness.
func (tc *TokenCache) Current() (Credential, bool) {
	cred := tc.current.Load()
	if cred == nil {
		return Credential{}, false
	}
	return *cred, true
}

// Invalidate drops the cached credential so the next call fetches.
func (tc *TokenCache) Invalidate() {
	tc.current.Store(nil)
}
