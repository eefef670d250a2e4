package apollo

import (
	"context"
	"fmt"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

// EnrichBatchLimit is the API's maximum IDs per bulk enrichment call.
const EnrichBatchLimit = 10

// EnrichBatch resolves up to EnrichBatchLimit person IDs into full lead
// records. Personal emails and phone numbers are never requested.
func (c *Client) EnrichBatch(ctx context.Context, personIDs []string) ([]domain.Lead, error) {
	if len(personIDs) == 0 {
		return nil, nil
	}
	if len(personIDs) > EnrichBatchLimit {
		return nil, fmt.Errorf("%w: batch of %d exceeds limit %d",
			domain.ErrInvalidInput, len(personIDs), EnrichBatchLimit)
	}

	details := make([]map[string]any, 0, len(personIDs))
	for _, id := range personIDs {
		if id == "" {
			continue
		}
		details = append(details, map[string]any{"id": id})
	}

	params := buildParams(map[string]any{
		"reveal_personal_emails": false,
		"reveal_phone_number":    false,
	})

	resp, err := c.postWithBackoff(ctx, bulkMatchPath, params, map[string]any{"details": details})
	if err != nil {
		return nil, fmt.Errorf("bulk match: %w", err)
	}

	matches, _ := resp["matches"].([]any)
	leads := make([]domain.Lead, 0, len(matches))
	for _, raw := range matches {
		match, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		leads = append(leads, leadFromMatch(match))
	}
	return leads, nil
}

// leadFromMatch normalises an enrichment match into a Lead. Missing fields
// stay empty; the caller re-applies exclusion rules on the result.
func leadFromMatch(match map[string]any) domain.Lead {
	org, _ := match["organization"].(map[string]any)
	if org == nil {
		org = map[string]any{}
	}

	organizationID := stringField(match, "organization_id")
	if organizationID == "" {
		organizationID = stringField(org, "id")
	}

	domainName := stringField(org, "primary_domain")
	if domainName == "" {
		domainName = stringField(org, "website_url")
	}

	return domain.Lead{
		PersonID:    firstString(match, []string{"id", "person_id"}),
		FirstName:   stringField(match, "first_name"),
		LastName:    stringField(match, "last_name"),
		Name:        stringField(match, "name"),
		Title:       stringField(match, "title"),
		LinkedInURL: stringField(match, "linkedin_url"),

		Email:       stringField(match, "email"),
		EmailStatus: domain.NormalizeEmailStatus(stringField(match, "email_status")),

		OrganizationID: organizationID,
		Company:        stringField(org, "name"),
		CompanyDomain:  domainName,
		CompanyWebsite: stringField(org, "website_url"),
		CompanyCountry: stringField(org, "country"),
		CompanyCity:    stringField(org, "city"),
	}
}
