// Package apperr defines the typed failure taxonomy shared by the
// transport client, the pipeline and the HTTP layer. Providers raise
// these, the orchestrator passes them through untranslated, and only
// the HTTP layer turns them into status codes and user-facing text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ConfigError means a required credential is missing or blank. It is
// raised before any network call is attempted.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// ValidationError means the input was rejected before any network
// side effect (bad MIME type, oversize file, unparseable URL).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Reason
}

// InvalidCredentialError means the provider rejected the supplied key
// (HTTP 401), or the key lacks access to the requested model (403).
type InvalidCredentialError struct {
	Provider string
	Reason   string
}

func (e *InvalidCredentialError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s rejected credential: %s", e.Provider, e.Reason)
	}
	return fmt.Sprintf("%s rejected credential", e.Provider)
}

// RateLimitError means the provider returned HTTP 429.
type RateLimitError struct {
	Provider string
}

func (e *RateLimitError) Error() string {
	return e.Provider + " rate limit exceeded"
}

// TimeoutError means a single provider call exceeded its bounded
// request timeout.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return e.Op + " timed out"
}

// ProviderError is an opaque upstream failure with whatever message
// the provider returned.
type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

// EmptySpeechError means transcription succeeded but produced no text.
type EmptySpeechError struct{}

func (e *EmptySpeechError) Error() string {
	return "no speech detected in audio"
}

// NotFoundError means the remote media does not exist (zero-results
// metadata response), distinct from a generic provider failure.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// HTTPStatus maps a taxonomy error to the status code the API layer
// should respond with. Unknown errors map to 500.
func HTTPStatus(err error) int {
	var (
		configErr     *ConfigError
		validationErr *ValidationError
		credErr       *InvalidCredentialError
		rateErr       *RateLimitError
		timeoutErr    *TimeoutError
		providerErr   *ProviderError
		emptyErr      *EmptySpeechError
		notFoundErr   *NotFoundError
	)
	switch {
	case errors.As(err, &configErr):
		return http.StatusPreconditionFailed
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &credErr):
		return http.StatusUnauthorized
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &emptyErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &providerErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
