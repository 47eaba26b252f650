package models

import (
	"errors"
	"net/http"
	"strings"
)

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ConfigurationError means the upstream credentials are not set. It is
// raised at call time, not at start-up.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "fare api credentials not configured: missing " + strings.Join(e.Missing, ", ")
}

type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "fare api authentication failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

type UpstreamError struct {
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	return "fare search request failed: " + e.Status
}

// HTTPStatus maps an error raised while searching to the status code the
// orchestrator answers with.
func HTTPStatus(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
