package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// ErrMissingAPIKey is returned when no usable API key is configured.
var ErrMissingAPIKey = errors.New("ai: ANTHROPIC_API_KEY is not configured")

// APIError is a non-200 answer from the Messages API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ai: API %d %s: %s", e.StatusCode, e.Type, e.Message)
}

// User-facing messages, one per failure class.
const (
	MsgMissingKey = "ANTHROPIC_API_KEY is not configured. Add your key to .env.local."
	MsgAuth       = "Invalid Anthropic API key. Check ANTHROPIC_API_KEY in .env.local."
	MsgRateLimit  = "Too many requests to the AI service. Try again in a few seconds."
	MsgTimeout    = "The AI analysis took too long. Try again."
	MsgGeneric    = "AI analysis failed. Try again or fill in the recipe manually."
	MsgUnreadable = "AI could not extract title"
)

// Classify maps an error from a Completer to a failed result. Every class
// gets a distinct message; nothing is retried.
func Classify(err error) core.Result {
	if errors.Is(err, ErrMissingAPIKey) {
		return core.Failure(core.KindAICredential, MsgMissingKey)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden,
			apiErr.Type == "authentication_error", apiErr.Type == "permission_error":
			return core.Failure(core.KindAIAuth, MsgAuth)
		case apiErr.StatusCode == http.StatusTooManyRequests, apiErr.Type == "rate_limit_error":
			return core.Failure(core.KindAIRateLimit, MsgRateLimit)
		case apiErr.StatusCode == http.StatusGatewayTimeout, apiErr.StatusCode == http.StatusRequestTimeout:
			return core.Failure(core.KindAITimeout, MsgTimeout)
		}
		return core.Failure(core.KindAIFailure, MsgGeneric)
	}
	if isTimeout(err) {
		return core.Failure(core.KindAITimeout, MsgTimeout)
	}
	return core.Failure(core.KindAIFailure, MsgGeneric)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// unreadable is the failure for a reply that holds no JSON object with a title.
func unreadable(hint string) core.Result {
	msg := MsgUnreadable
	if hint != "" {
		msg += ". " + hint
	}
	return core.Failure(core.KindAIUnreadable, msg)
}
