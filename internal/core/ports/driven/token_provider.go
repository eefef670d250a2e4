package driven

import "context"

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle acquisition and caching transparently.
type TokenProvider interface {
	// GetToken returns a valid access token, acquiring or refreshing one
	// if needed.
	GetToken(ctx context.Context) (string, error)

	// Invalidate discards any cached token so the next GetToken call
	// acquires a fresh one. Called after a server rejects a token.
	Invalidate()
}
