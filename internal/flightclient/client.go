// Package flightclient calls a running fare search endpoint and formats its
// results for display.
package flightclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/dharmasatrya/faregate/internal/models"
	"github.com/dharmasatrya/faregate/internal/retry"
)

// SearchError is a failed search as reported by the endpoint.
type SearchError struct {
	StatusCode int
	Code       string
	Message    string
}

// retryable reports whether another attempt could succeed. Rejected input
// and missing server credentials fail the same way every time.
func (e *SearchError) retryable() bool {
	return e.StatusCode != http.StatusBadRequest && e.Code != models.CodeConfiguration
}

func (e *SearchError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("flight search failed with status %d", e.StatusCode)
	}
	return e.Message
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	timer      backoff.Timer
	log        zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimer replaces the timer that paces retries.
func WithTimer(t backoff.Timer) Option {
	return func(c *Client) { c.timer = t }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    []models.Flight `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func (c *Client) SearchFlights(ctx context.Context, intent models.SearchIntent) ([]models.Flight, error) {
	payload, err := json.Marshal(intent)
	if err != nil {
		return nil, fmt.Errorf("encode search: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call flight search: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &SearchError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("decode search response (status %d): %v", resp.StatusCode, err),
		}
	}

	if resp.StatusCode != http.StatusOK || !env.Success {
		return nil, &SearchError{StatusCode: resp.StatusCode, Code: env.Code, Message: env.Error}
	}

	if env.Data == nil {
		env.Data = []models.Flight{}
	}
	return env.Data, nil
}

// SearchFlightsWithRetry makes up to maxRetries attempts. Attempts are
// numbered from 0 and the wait after attempt n is 2^n seconds, so three
// attempts wait 1s then 2s. Rejected input and a server without fare API
// credentials are returned after the first attempt. A maxRetries below one
// means retry.DefaultAttempts.
func (c *Client) SearchFlightsWithRetry(ctx context.Context, intent models.SearchIntent, maxRetries int) ([]models.Flight, error) {
	if maxRetries < 1 {
		maxRetries = retry.DefaultAttempts
	}

	attempt := 0
	return retry.Do(ctx, maxRetries, func(ctx context.Context) ([]models.Flight, error) {
		attempt++
		flights, err := c.SearchFlights(ctx, intent)
		if err == nil {
			return flights, nil
		}

		if se, ok := err.(*SearchError); ok && !se.retryable() {
			return nil, retry.Permanent(err)
		}
		return nil, err
	},
		retry.WithPolicy(retry.Doubling(time.Second)),
		retry.WithTimer(c.timer),
		retry.WithNotify(func(err error, wait time.Duration) {
			c.log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("flight search failed, retrying")
		}),
	)
}
