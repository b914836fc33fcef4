package provider

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"clipinsight/internal/apperr"
)

// mapOpenAIError converts a go-openai failure into the taxonomy the
// caller can act on. op names the call for timeout messages,
// providerName names the upstream service.
func mapOpenAIError(err error, op, providerName string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &apperr.TimeoutError{Op: op}
	}

	status := 0
	message := err.Error()

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatusCode
		message = apiErr.Message
	} else if errors.As(err, &reqErr) {
		status = reqErr.HTTPStatusCode
		if reqErr.Err != nil {
			message = reqErr.Err.Error()
		}
	}

	switch status {
	case 401:
		return &apperr.InvalidCredentialError{Provider: providerName}
	case 403:
		return &apperr.InvalidCredentialError{
			Provider: providerName,
			Reason:   "credential lacks required model access",
		}
	case 429:
		return &apperr.RateLimitError{Provider: providerName}
	case 0:
		// Transport-level failure without an HTTP status.
		return &apperr.ProviderError{Provider: providerName, Message: message}
	default:
		return &apperr.ProviderError{Provider: providerName, Message: message}
	}
}
