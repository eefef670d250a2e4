package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

func setupTestLeadStore(t *testing.T) *LeadStore {
	t.Helper()

	store, err := NewLeadStore(filepath.Join(t.TempDir(), "leads.csv"))
	require.NoError(t, err)
	return store
}

func sampleLead(id string) domain.Lead {
	return domain.Lead{
		PersonID:       id,
		FirstName:      "Jane",
		LastName:       "Doe",
		Name:           "Jane Doe",
		Title:          "VP of Data",
		LinkedInURL:    "https://linkedin.com/in/janedoe",
		Email:          "jane@acme.com",
		EmailStatus:    domain.EmailStatusVerified,
		OrganizationID: "org-1",
		Company:        "Acme",
		CompanyDomain:  "acme.com",
		CompanyWebsite: "https://acme.com",
		CompanyCountry: "Germany",
		CompanyCity:    "Berlin",
	}
}

func TestNewLeadStoreEmptyPath(t *testing.T) {
	_, err := NewLeadStore("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAllMissingFile(t *testing.T) {
	store := setupTestLeadStore(t)

	leads, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)

	seen, err := store.SeenIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, seen)
}

func TestAppendRoundTrip(t *testing.T) {
	store := setupTestLeadStore(t)
	ctx := context.Background()

	want := sampleLead("p1")
	require.NoError(t, store.Append(ctx, []domain.Lead{want}))

	got, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	store := setupTestLeadStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, []domain.Lead{sampleLead("p1")}))
	require.NoError(t, store.Append(ctx, []domain.Lead{sampleLead("p2")}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(raw), "person_id"))

	leads, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, leads, 2)
}

func TestAppendEmptyBatchLeavesFileUntouched(t *testing.T) {
	store := setupTestLeadStore(t)

	require.NoError(t, store.Append(context.Background(), nil))
	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestSeenIDs(t *testing.T) {
	store := setupTestLeadStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, []domain.Lead{sampleLead("p1"), sampleLead("p2")}))

	seen, err := store.SeenIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, seen, 2)
	_, ok := seen["p1"]
	assert.True(t, ok)
	_, ok = seen["p3"]
	assert.False(t, ok)
}

func TestAllReordersByHeader(t *testing.T) {
	// A hand-edited file with a different column order still loads.
	path := filepath.Join(t.TempDir(), "leads.csv")
	content := "email,person_id,first_name,last_name,name,title,linkedin_url,email_status," +
		"organization_id,organization_name,organization_domain,organization_website," +
		"organization_country,organization_city\n" +
		"jane@acme.com,p1,Jane,Doe,Jane Doe,VP of Data,,Verified,org-1,Acme,acme.com,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := NewLeadStore(path)
	require.NoError(t, err)

	leads, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "p1", leads[0].PersonID)
	assert.Equal(t, "jane@acme.com", leads[0].Email)
	assert.Equal(t, domain.EmailStatusVerified, leads[0].EmailStatus)
}

func TestAllMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte("email,name\njane@acme.com,Jane\n"), 0600))

	store, err := NewLeadStore(path)
	require.NoError(t, err)

	_, err = store.All(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
