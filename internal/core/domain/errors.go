package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownRecipe indicates an unrecognised recipe mode.
	ErrUnknownRecipe = errors.New("unknown recipe mode")

	// ErrQuotaReached indicates the daily send quota has been exhausted.
	ErrQuotaReached = errors.New("daily send quota reached")

	// ErrAuthExpired indicates the access token was rejected and refresh failed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrTokenRefreshFailed indicates token acquisition failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrRetriesExhausted indicates a remote call failed after all retries.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// RemoteError is a non-retryable (or retry-exhausted) failure from a remote
// API. StatusCode is zero when the failure happened below the HTTP layer.
type RemoteError struct {
	Service    string
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Service, e.Detail)
	}
	return fmt.Sprintf("%s: API error %d: %s", e.Service, e.StatusCode, e.Detail)
}

// IsRemoteStatus reports whether err carries the given HTTP status code.
func IsRemoteStatus(err error, status int) bool {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == status
	}
	return false
}
