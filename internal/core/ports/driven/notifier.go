package driven

import "context"

// Notifier delivers a short text message to an out-of-band sink at the end
// of a dispatch run. Implementations suppress consecutive duplicate
// messages within their own lifetime.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
