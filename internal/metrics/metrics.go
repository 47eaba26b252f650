// Package metrics exposes Prometheus instrumentation for the fare search
// pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the auth, upstream and search layers report to.
type Recorder interface {
	RecordTokenFetch(success bool)
	RecordTokenCacheHit()
	RecordUpstreamStatus(statusCode int)
	RecordUpstreamLatency(duration time.Duration)
	RecordSearchResults(count int)
	RecordDroppedRecommendations(count int)
}

type Collector struct {
	tokenFetch      *prometheus.CounterVec
	tokenCacheHit   prometheus.Counter
	upstreamStatus  *prometheus.CounterVec
	upstreamLatency prometheus.Histogram
	searchResults   prometheus.Histogram
	dropped         prometheus.Counter
}

var _ Recorder = (*Collector)(nil)

// NewCollector registers every metric on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		tokenFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "faregate_token_fetch_total",
			Help: "Upstream token requests by outcome.",
		}, []string{"outcome"}),
		tokenCacheHit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faregate_token_cache_hits_total",
			Help: "Searches served with a cached upstream token.",
		}),
		upstreamStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "faregate_upstream_status_total",
			Help: "FindLowFares responses by HTTP status code.",
		}, []string{"status_code"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "faregate_upstream_latency_seconds",
			Help:    "FindLowFares round trip latency.",
			Buckets: prometheus.DefBuckets,
		}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "faregate_search_results",
			Help:    "Normalized flights returned per search.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faregate_dropped_recommendations_total",
			Help: "Fare recommendations skipped because they could not be resolved.",
		}),
	}

	reg.MustRegister(
		c.tokenFetch,
		c.tokenCacheHit,
		c.upstreamStatus,
		c.upstreamLatency,
		c.searchResults,
		c.dropped,
	)

	return c
}

func (c *Collector) RecordTokenFetch(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	c.tokenFetch.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordTokenCacheHit() {
	c.tokenCacheHit.Inc()
}

func (c *Collector) RecordUpstreamStatus(statusCode int) {
	c.upstreamStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordUpstreamLatency(duration time.Duration) {
	c.upstreamLatency.Observe(duration.Seconds())
}

func (c *Collector) RecordSearchResults(count int) {
	c.searchResults.Observe(float64(count))
}

func (c *Collector) RecordDroppedRecommendations(count int) {
	c.dropped.Add(float64(count))
}

// Handler serves the registry for Prometheus scraping.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) RecordTokenFetch(bool)               {}
func (Nop) RecordTokenCacheHit()                {}
func (Nop) RecordUpstreamStatus(int)            {}
func (Nop) RecordUpstreamLatency(time.Duration) {}
func (Nop) RecordSearchResults(int)             {}
func (Nop) RecordDroppedRecommendations(int)    {}
