package driven

import (
	"context"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

// PeopleDirectory is the people/company search and enrichment API consumed
// by the collection loop. Implementations own retry, backoff and pacing;
// errors surfacing from these calls are terminal for the current page or
// batch.
type PeopleDirectory interface {
	// SearchPage runs one search call for the recipe's filters and the
	// given 1-based page. An empty slice with no error means the result
	// set is exhausted.
	SearchPage(ctx context.Context, recipe *domain.Recipe, page int) ([]domain.Candidate, error)

	// EnrichBatch resolves up to the API's batch limit of person IDs into
	// full lead records. IDs with no match are silently absent from the
	// result.
	EnrichBatch(ctx context.Context, personIDs []string) ([]domain.Lead, error)
}
