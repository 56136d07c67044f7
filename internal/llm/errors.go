package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrRemoteCall matches every failure of a remote completion call.
// Use errors.Is(err, ErrRemoteCall) to tell remote failures apart from
// parse or caller errors.
var ErrRemoteCall = errors.New("remote completion call failed")

// ErrRateLimit indicates the provider returned a rate limit or quota error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

func (e *ErrRateLimit) Is(target error) bool { return target == ErrRemoteCall }

// ErrAuth indicates the provider rejected the credentials (401/403).
type ErrAuth struct {
	Err error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("LLM authentication failed: %v", e.Err)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

func (e *ErrAuth) Is(target error) bool { return target == ErrRemoteCall }

// ErrInvalidResponse indicates the provider answered but the payload could
// not be turned into completion text.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

func (e *ErrInvalidResponse) Is(target error) bool { return target == ErrRemoteCall }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

func (e *ErrProviderUnavailable) Is(target error) bool { return target == ErrRemoteCall }

// ErrRequestRejected indicates the provider refused the request itself
// (a 4xx other than auth, timeout or rate limit): a malformed request, an
// unknown model or a prompt that is too long. Retrying it unchanged fails
// the same way.
type ErrRequestRejected struct {
	Status int
	Err    error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("LLM request rejected (status %d): %v", e.Status, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

func (e *ErrRequestRejected) Is(target error) bool { return target == ErrRemoteCall }

// ErrTimeout indicates the call did not finish within the configured timeout.
type ErrTimeout struct {
	After time.Duration
	Err   error
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("LLM request timed out after %s", e.After)
}

func (e *ErrTimeout) Unwrap() error { return e.Err }

func (e *ErrTimeout) Is(target error) bool { return target == ErrRemoteCall }

// mapStatus converts an HTTP status code reported by an SDK into one of the
// typed errors above.
func mapStatus(status int, err error) error {
	switch {
	case status == 429:
		return &ErrRateLimit{Err: err}
	case status == 401 || status == 403:
		return &ErrAuth{Err: err}
	case status >= 400 && status < 500 && status != 408:
		return &ErrRequestRejected{Status: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
