package apollo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

func TestEnrichBatchParsesMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/people/bulk_match", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "false", query.Get("reveal_personal_emails"))
		assert.Equal(t, "false", query.Get("reveal_phone_number"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		details := body["details"].([]any)
		assert.Len(t, details, 2)

		json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{
					"id":           "p1",
					"first_name":   "Jane",
					"last_name":    "Doe",
					"name":         "Jane Doe",
					"title":        "Chief Data Officer",
					"linkedin_url": "https://linkedin.com/in/janedoe",
					"email":        "jane@acme.example",
					"email_status": "Verified",
					"organization": map[string]any{
						"id":             "org1",
						"name":           "Acme AG",
						"primary_domain": "acme.example",
						"website_url":    "https://acme.example",
						"country":        "Germany",
						"city":           "Hamburg",
					},
				},
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv)
	leads, err := c.EnrichBatch(context.Background(), []string{"p1", "p2"})
	require.NoError(t, err)
	require.Len(t, leads, 1)

	lead := leads[0]
	assert.Equal(t, "p1", lead.PersonID)
	assert.Equal(t, "Jane", lead.FirstName)
	assert.Equal(t, "jane@acme.example", lead.Email)
	assert.Equal(t, domain.EmailStatusVerified, lead.EmailStatus)
	assert.Equal(t, "org1", lead.OrganizationID)
	assert.Equal(t, "Acme AG", lead.Company)
	assert.Equal(t, "acme.example", lead.CompanyDomain)
	assert.Equal(t, "Germany", lead.CompanyCountry)
}

func TestEnrichBatchFallsBackToWebsiteDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{
					"person_id":       "p9",
					"organization_id": "org9",
					"organization": map[string]any{
						"name":        "Globex",
						"website_url": "https://globex.example",
					},
				},
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv)
	leads, err := c.EnrichBatch(context.Background(), []string{"p9"})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "p9", leads[0].PersonID)
	assert.Equal(t, "org9", leads[0].OrganizationID)
	assert.Equal(t, "https://globex.example", leads[0].CompanyDomain)
}

func TestEnrichBatchRejectsOversizedBatch(t *testing.T) {
	c := NewClient("key")
	ids := make([]string, EnrichBatchLimit+1)
	for i := range ids {
		ids[i] = "p"
	}
	_, err := c.EnrichBatch(context.Background(), ids)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestEnrichBatchEmptyInput(t *testing.T) {
	c := NewClient("key")
	leads, err := c.EnrichBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, leads)
}
