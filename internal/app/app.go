// Package app assembles the search service from configuration. Both the
// HTTP server and the Lambda entrypoint start here.
package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/dharmasatrya/faregate/internal/auth"
	"github.com/dharmasatrya/faregate/internal/cache"
	"github.com/dharmasatrya/faregate/internal/config"
	"github.com/dharmasatrya/faregate/internal/metrics"
	"github.com/dharmasatrya/faregate/internal/ratelimit"
	"github.com/dharmasatrya/faregate/internal/search"
	"github.com/dharmasatrya/faregate/internal/upstream"
)

type App struct {
	Service *search.Service
	Tokens  *auth.TokenCache
	Cache   cache.Cache
}

// New wires the service. When reg is nil metrics are discarded.
func New(cfg config.Config, log zerolog.Logger, reg prometheus.Registerer) (*App, error) {
	var rec metrics.Recorder = metrics.Nop{}
	if reg != nil {
		rec = metrics.NewCollector(reg)
	}

	limiter := ratelimit.New(ratelimit.Limit{RPS: cfg.UpstreamRPS, Burst: cfg.UpstreamBurst}, nil)

	fetcher := auth.NewPasswordGrantFetcher(auth.FetcherConfig{
		BaseURL:     cfg.BaseURL,
		Credentials: cfg.Credentials,
		Timeout:     cfg.Timeout,
		Limiter:     limiter,
	})
	tokens := auth.NewTokenCache(fetcher,
		auth.WithMetrics(rec),
		auth.WithLogger(log.With().Str("component", "auth").Logger()),
	)

	client := upstream.NewClient(upstream.ClientConfig{
		BaseURL:         cfg.BaseURL,
		SubscriptionKey: cfg.Credentials.SubscriptionKey,
		Timeout:         cfg.Timeout,
		Limiter:         limiter,
		Metrics:         rec,
		Logger:          log.With().Str("component", "upstream").Logger(),
	})

	var resultCache cache.Cache = cache.NewNoOpCache()
	if cfg.CacheEnabled {
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis at %s:%s: %w", cfg.RedisHost, cfg.RedisPort, err)
		}
		resultCache = rc
		log.Info().Str("host", cfg.RedisHost).Str("port", cfg.RedisPort).Dur("ttl", cfg.RedisTTL).Msg("redis result cache enabled")
	}

	svc := search.NewService(tokens, client, search.Config{
		Cache:   resultCache,
		Metrics: rec,
		Logger:  log.With().Str("component", "search").Logger(),
	})

	return &App{Service: svc, Tokens: tokens, Cache: resultCache}, nil
}

func (a *App) Close() error {
	return a.Cache.Close()
}
