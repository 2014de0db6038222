package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
)

// Sentinel errors surfaced by Run. Boundaries map these to wire error
// codes via Classify rather than inspecting error strings.
var (
	// ErrRetrievalExhausted indicates every search query in the fan-out
	// failed or returned nothing, leaving no evidence to extract from.
	ErrRetrievalExhausted = eris.New("retrieval: all queries failed or returned no results")

	// ErrNotConfigured indicates a required backend credential is missing.
	ErrNotConfigured = eris.New("pipeline: backend clients are not configured")

	// ErrInvalidICP indicates the supplied profile failed validation.
	ErrInvalidICP = eris.New("pipeline: invalid ideal customer profile")
)

// Wire error codes carried in failure envelopes.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeConfigurationError = "configuration_error"
	CodeRetrievalExhausted = "retrieval_exhausted"
	CodeTimeout            = "timeout"
	CodeInternalError      = "internal_error"
)

// Classify maps a pipeline error to its wire error code.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case eris.Is(err, ErrInvalidICP):
		return CodeInvalidRequest
	case eris.Is(err, ErrNotConfigured):
		return CodeConfigurationError
	case eris.Is(err, ErrRetrievalExhausted):
		return CodeRetrievalExhausted
	case eris.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	default:
		return CodeInternalError
	}
}

// HTTPStatus maps a wire error code to the HTTP status the server
// responds with.
func HTTPStatus(code string) int {
	switch code {
	case CodeInvalidRequest:
		return 400
	case CodeConfigurationError:
		return 503
	case CodeRetrievalExhausted:
		return 502
	case CodeTimeout:
		return 504
	default:
		return 500
	}
}
