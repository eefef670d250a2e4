package driven

import (
	"context"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

// SendLedger is the durable send-history store. It is the sole enforcement
// point for the at-most-once-per-day invariant: inserting a second entry for
// the same (email, day) key is a no-op, not an error.
type SendLedger interface {
	// Record inserts an attempt. Returns false when an entry for
	// (entry.Email, entry.SendDate) already exists; the stored entry is
	// left unchanged.
	Record(ctx context.Context, entry *domain.SendLogEntry) (bool, error)

	// AttemptCountOn returns the number of attempts logged for the day,
	// successful or not. All attempts count against the daily quota.
	AttemptCountOn(ctx context.Context, day string) (int, error)

	// CompanyCountOn returns the number of attempts logged for the
	// company on the day.
	CompanyCountOn(ctx context.Context, day, company string) (int, error)

	// Logged reports whether the recipient already has an entry for the day.
	Logged(ctx context.Context, day, email string) (bool, error)

	// EntriesOn returns the day's entries in insertion order.
	EntriesOn(ctx context.Context, day string) ([]domain.SendLogEntry, error)
}
