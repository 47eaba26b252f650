package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dharmasatrya/faregate/internal/metrics"
	"github.com/dharmasatrya/faregate/internal/models"
	"github.com/dharmasatrya/faregate/internal/ratelimit"
)

const (
	SubscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

	TokenPath  = "/Auth/Token"
	SearchPath = "/FindLowFares"

	maxErrorBody = 4 << 10
)

// SubscriptionTransport stamps the subscription key on every request the
// fare API receives, token requests included.
type SubscriptionTransport struct {
	Key  string
	Base http.RoundTripper
}

func (t *SubscriptionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	r := req.Clone(req.Context())
	r.Header.Set(SubscriptionKeyHeader, t.Key)
	return base.RoundTrip(r)
}

func NewHTTPClient(subscriptionKey string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &SubscriptionTransport{Key: subscriptionKey},
	}
}

type ClientConfig struct {
	BaseURL         string
	SubscriptionKey string
	Timeout         time.Duration
	HTTPClient      *http.Client
	Limiter         *ratelimit.EndpointLimiter
	Metrics         metrics.Recorder
	Logger          zerolog.Logger
}

type Client struct {
	searchURL  string
	httpClient *http.Client
	limiter    *ratelimit.EndpointLimiter
	metrics    metrics.Recorder
	log        zerolog.Logger
}

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = NewHTTPClient(cfg.SubscriptionKey, timeout)
	}

	rec := cfg.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}

	return &Client{
		searchURL:  strings.TrimRight(cfg.BaseURL, "/") + SearchPath,
		httpClient: httpClient,
		limiter:    cfg.Limiter,
		metrics:    rec,
		log:        cfg.Logger,
	}
}

// FindLowFares posts req with token as the bearer credential and returns
// the raw response body. A non-2xx answer is a *models.UpstreamError.
func (c *Client) FindLowFares(ctx context.Context, token string, req SearchRequest) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	if err := c.limiter.Wait(ctx, ratelimit.EndpointSearch); err != nil {
		return nil, fmt.Errorf("wait for search slot: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	c.metrics.RecordUpstreamLatency(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("send search request: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.RecordUpstreamStatus(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("body", string(snippet)).
			Msg("fare search rejected upstream")
		return nil, &models.UpstreamError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	return body, nil
}

// Decode reads a FindLowFares body. Invalid JSON or anything other than
// the expected top-level object decodes to nil. A mistyped field deeper in
// the document keeps everything else that decoded.
func Decode(body []byte) *SearchResponse {
	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" {
			return nil
		}
	}
	return &resp
}
