package auth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/dharmasatrya/faregate/internal/models"
	"github.com/dharmasatrya/faregate/internal/ratelimit"
	"github.com/dharmasatrya/faregate/internal/upstream"
)

type Credentials struct {
	Username        string
	Password        string
	SubscriptionKey string
}

func (c Credentials) missing() []string {
	var missing []string
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if c.SubscriptionKey == "" {
		missing = append(missing, "subscription key")
	}
	return missing
}

// PasswordGrantFetcher obtains tokens from {base}/Auth/Token with the
// resource-owner password grant.
type PasswordGrantFetcher struct {
	creds      Credentials
	config     oauth2.Config
	httpClient *http.Client
	limiter    *ratelimit.EndpointLimiter
}

type FetcherConfig struct {
	BaseURL     string
	Credentials Credentials
	Timeout     time.Duration
	HTTPClient  *http.Client
	Limiter     *ratelimit.EndpointLimiter
}

func NewPasswordGrantFetcher(cfg FetcherConfig) *PasswordGrantFetcher {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = upstream.NewHTTPClient(cfg.Credentials.SubscriptionKey, timeout)
	}

	return &PasswordGrantFetcher{
		creds: cfg.Credentials,
		config: oauth2.Config{
			Endpoint: oauth2.Endpoint{
				TokenURL:  strings.TrimRight(cfg.BaseURL, "/") + upstream.TokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
		limiter:    cfg.Limiter,
	}
}

func (f *PasswordGrantFetcher) FetchToken(ctx context.Context) (Credential, error) {
	if missing := f.creds.missing(); len(missing) > 0 {
		return Credential{}, &models.ConfigurationError{Missing: missing}
	}

	if err := f.limiter.Wait(ctx, ratelimit.EndpointToken); err != nil {
		return Credential{}, &models.AuthError{Err: fmt.Errorf("wait for token slot: %w", err)}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
	tok, err := f.config.PasswordCredentialsToken(ctx, f.creds.Username, f.creds.Password)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			return Credential{}, &models.AuthError{Err: fmt.Errorf("token endpoint returned %s", rerr.Response.Status)}
		}
		return Credential{}, &models.AuthError{Err: err}
	}

	return Credential{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresIn:   expiresIn(tok),
	}, nil
}

// expiresIn prefers the raw expires_in field over oauth2's computed Expiry,
// which is stamped with the wall clock rather than the cache's clock.
func expiresIn(tok *oauth2.Token) int {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int(v)
	case int64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if tok.Expiry.IsZero() {
		return 0
	}
	return int(math.Round(time.Until(tok.Expiry).Seconds()))
}
