package apollo

import (
	"context"
	"fmt"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
	"github.com/arclight-labs/prospect-cli/internal/core/ports/driven"
)

// Compile-time check that Client satisfies the directory port.
var _ driven.PeopleDirectory = (*Client)(nil)

// The API has shipped the search result list under different keys across
// versions. Keys are tried in order; first match wins.
var searchListKeys = []string{"people", "results", "contacts"}

// Person identifiers likewise appear under two keys.
var personIDKeys = []string{"person_id", "id"}

// SearchPage runs one people-search call for the recipe plus the page
// number. An empty result with no error means the result set is exhausted.
func (c *Client) SearchPage(
	ctx context.Context, recipe *domain.Recipe, page int,
) ([]domain.Candidate, error) {
	filters := make(map[string]any, len(recipe.Filters)+1)
	for key, value := range recipe.Filters {
		filters[key] = value
	}
	filters["page"] = page

	resp, err := c.postWithBackoff(ctx, peopleSearchPath, buildParams(filters), map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("search page %d: %w", page, err)
	}

	people := firstList(resp, searchListKeys)
	candidates := make([]domain.Candidate, 0, len(people))
	for _, raw := range people {
		person, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			ID:      firstString(person, personIDKeys),
			Title:   stringField(person, "title"),
			Company: companyName(person),
			Raw:     person,
		})
	}
	return candidates, nil
}

// firstList returns the first key that holds a list, or nil.
func firstList(m map[string]any, keys []string) []any {
	for _, key := range keys {
		if list, ok := m[key].([]any); ok {
			return list
		}
	}
	return nil
}

// firstString returns the first key that holds a non-empty string.
func firstString(m map[string]any, keys []string) string {
	for _, key := range keys {
		if s := stringField(m, key); s != "" {
			return s
		}
	}
	return ""
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// companyName digs the employer name out of the search snippet: a flat
// organization_name or company field, or the nested organization object.
func companyName(person map[string]any) string {
	if name := firstString(person, []string{"organization_name", "company"}); name != "" {
		return name
	}
	if org, ok := person["organization"].(map[string]any); ok {
		return stringField(org, "name")
	}
	return ""
}
