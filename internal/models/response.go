package models

import "errors"

type SearchResponse struct {
	Success bool     `json:"success"`
	Data    []Flight `json:"data"`
}

const (
	CodeInvalidRequest = "invalid_request"
	CodeValidation     = "validation_error"
	CodeConfiguration  = "configuration_error"
	CodeAuth           = "auth_error"
	CodeUpstream       = "upstream_error"
	CodeSearch         = "search_error"
)

// ErrorResponse is the failure envelope. Code lets callers tell failures
// worth retrying from those that are not.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{Success: false, Error: err.Error(), Code: ErrorCode(err)}
}

func ErrorCode(err error) string {
	var (
		verr   *ValidationError
		cfgErr *ConfigurationError
		auth   *AuthError
		up     *UpstreamError
	)
	switch {
	case errors.As(err, &verr):
		return CodeValidation
	case errors.As(err, &cfgErr):
		return CodeConfiguration
	case errors.As(err, &auth):
		return CodeAuth
	case errors.As(err, &up):
		return CodeUpstream
	default:
		return CodeSearch
	}
}
