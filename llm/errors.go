// Provider failure classification.
//
// Information Hiding:
// - Provider-specific error shapes inspected here only
// - Callers see a three-way retryable/fatal classification

package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// FailureKind classifies a provider failure for retry policy.
type FailureKind int

const (
	// FailureUnavailable is a transient provider or transport failure.
	// Retryable.
	FailureUnavailable FailureKind = iota
	// FailureRateLimited means the provider rejected the call with a rate
	// limit. Retryable after backoff.
	FailureRateLimited
	// FailureInvalidRequest means the provider rejected the request itself.
	// Fatal for the current run; retrying the same payload cannot succeed.
	FailureInvalidRequest
)

// String returns the string representation of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureRateLimited:
		return "rate_limited"
	case FailureInvalidRequest:
		return "invalid_request"
	default:
		return "unavailable"
	}
}

// Retryable reports whether the failure is worth retrying with backoff.
func (k FailureKind) Retryable() bool {
	return k != FailureInvalidRequest
}

// ClassifyError maps a provider error to a FailureKind.
// Unknown errors classify as FailureUnavailable: transient trouble is the
// common case and the retry budget bounds the cost of guessing wrong.
func ClassifyError(err error) FailureKind {
	if err == nil {
		return FailureUnavailable
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return FailureUnavailable
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return classifyStatus(anthropicErr.StatusCode)
	}

	var openaiErr *openai.APIError
	if errors.As(err, &openaiErr) {
		return classifyStatus(openaiErr.HTTPStatusCode)
	}

	var openaiReqErr *openai.RequestError
	if errors.As(err, &openaiReqErr) {
		return classifyStatus(openaiReqErr.HTTPStatusCode)
	}

	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return classifyStatus(genaiErr.Code)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return FailureUnavailable
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests") {
		return FailureRateLimited
	}

	return FailureUnavailable
}

// classifyStatus maps an HTTP status code to a FailureKind.
func classifyStatus(status int) FailureKind {
	switch {
	case status == http.StatusTooManyRequests:
		return FailureRateLimited
	case status >= 500 || status == 0:
		return FailureUnavailable
	case status >= 400:
		return FailureInvalidRequest
	default:
		return FailureUnavailable
	}
}
