package search

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dharmasatrya/faregate/internal/cache"
	"github.com/dharmasatrya/faregate/internal/filter"
	"github.com/dharmasatrya/faregate/internal/metrics"
	"github.com/dharmasatrya/faregate/internal/models"
	"github.com/dharmasatrya/faregate/internal/upstream"
)

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// invalidator is implemented by token sources that can drop a credential
// the fare API has stopped accepting.
type invalidator interface {
	Invalidate()
}

type FareSearcher interface {
	FindLowFares(ctx context.Context, token string, req upstream.SearchRequest) ([]byte, error)
}

type Config struct {
	Cache   cache.Cache
	Metrics metrics.Recorder
	Logger  zerolog.Logger
}

// Service runs one search end to end: validate, authenticate, build the
// upstream request, call, normalize.
type Service struct {
	tokens  TokenSource
	fares   FareSearcher
	cache   cache.Cache
	metrics metrics.Recorder
	log     zerolog.Logger
}

func NewService(tokens TokenSource, fares FareSearcher, cfg Config) *Service {
	c := cfg.Cache
	if c == nil {
		c = cache.NewNoOpCache()
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.Nop{}
	}
	return &Service{
		tokens:  tokens,
		fares:   fares,
		cache:   c,
		metrics: m,
		log:     cfg.Logger,
	}
}

func (s *Service) Search(ctx context.Context, intent models.SearchIntent) ([]models.Flight, error) {
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	log := s.log.With().
		Str("origin", intent.Origin).
		Str("destination", intent.Destination).
		Str("departure_date", intent.DepartureDate).
		Bool("round_trip", intent.IsRoundTrip()).
		Logger()

	if cached, ok := s.cache.Get(ctx, intent); ok {
		log.Debug().Int("results", len(cached)).Msg("fare search served from cache")
		return filter.Apply(cached, intent.Filters), nil
	}

	start := time.Now()

	token, err := s.tokens.Token(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not obtain fare api token")
		return nil, err
	}

	body, err := s.fares.FindLowFares(ctx, token, upstream.BuildRequest(intent))
	if err != nil {
		s.dropRejectedToken(err)
		log.Error().Err(err).Msg("fare search failed")
		return nil, err
	}

	flights, dropped := upstream.Normalize(upstream.Decode(body))
	s.metrics.RecordSearchResults(len(flights))
	if dropped > 0 {
		s.metrics.RecordDroppedRecommendations(dropped)
		log.Debug().Int("dropped", dropped).Msg("skipped unresolvable recommendations")
	}

	if err := s.cache.Set(ctx, intent, flights); err != nil {
		log.Warn().Err(err).Msg("could not cache fare search results")
	}

	log.Info().
		Int("results", len(flights)).
		Dur("took", time.Since(start)).
		Msg("fare search completed")

	return filter.Apply(flights, intent.Filters), nil
}

func (s *Service) dropRejectedToken(err error) {
	var upErr *models.UpstreamError
	if !errors.As(err, &upErr) || upErr.StatusCode != http.StatusUnauthorized {
		return
	}
	if inv, ok := s.tokens.(invalidator); ok {
		inv.Invalidate()
	}
}
