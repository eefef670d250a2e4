package driven

import (
	"context"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

// LeadStore persists enriched leads. The table is append-only: records are
// never updated in place, and uniqueness of PersonID is enforced by the
// collection loop pre-filtering against SeenIDs before enrichment.
type LeadStore interface {
	// Append writes leads to the end of the table, creating it (with a
	// header) on first write.
	Append(ctx context.Context, leads []domain.Lead) error

	// SeenIDs returns the set of person IDs already present in the table.
	SeenIDs(ctx context.Context) (map[string]struct{}, error)

	// All reads the full table in insertion order.
	All(ctx context.Context) ([]domain.Lead, error)
}
