// Package csvfile persists collected leads to an append-only CSV file so a
// partially completed collection run keeps everything gathered so far.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
	"github.com/arclight-labs/prospect-cli/internal/core/ports/driven"
)

// header defines the stable column order of the lead file.
var header = []string{
	"person_id",
	"first_name",
	"last_name",
	"name",
	"title",
	"linkedin_url",
	"email",
	"email_status",
	"organization_id",
	"organization_name",
	"organization_domain",
	"organization_website",
	"organization_country",
	"organization_city",
}

// LeadStore reads and appends leads in a single CSV file.
type LeadStore struct {
	path string
}

var _ driven.LeadStore = (*LeadStore)(nil)

// NewLeadStore creates a lead store writing to the given file path.
func NewLeadStore(path string) (*LeadStore, error) {
	if path == "" {
		return nil, fmt.Errorf("lead store path: %w", domain.ErrInvalidInput)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating lead store directory: %w", err)
		}
	}
	return &LeadStore{path: path}, nil
}

// Path returns the CSV file path.
func (s *LeadStore) Path() string {
	return s.path
}

// Append writes the leads to the end of the file, creating it with a header
// row first if it does not exist yet.
func (s *LeadStore) Append(ctx context.Context, leads []domain.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	writeHeader := true
	if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
		writeHeader = false
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening lead file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("writing lead header: %w", err)
		}
	}
	for _, lead := range leads {
		if err := w.Write(record(lead)); err != nil {
			return fmt.Errorf("writing lead row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing lead file: %w", err)
	}

	return f.Close()
}

// SeenIDs returns the set of person IDs already stored in the file. A missing
// file yields an empty set.
func (s *LeadStore) SeenIDs(ctx context.Context) (map[string]struct{}, error) {
	leads, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(leads))
	for _, lead := range leads {
		if lead.PersonID != "" {
			seen[lead.PersonID] = struct{}{}
		}
	}
	return seen, nil
}

// All reads every lead in the file. A missing file yields no leads and no
// error.
func (s *LeadStore) All(ctx context.Context) ([]domain.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening lead file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	head, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading lead header: %w", err)
	}

	idx := make(map[string]int, len(head))
	for i, name := range head {
		idx[name] = i
	}
	for _, name := range header {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("lead file missing column %q: %w", name, domain.ErrInvalidInput)
		}
	}

	var leads []domain.Lead
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading lead row: %w", err)
		}
		field := func(name string) string {
			i := idx[name]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}
		leads = append(leads, domain.Lead{
			PersonID:       field("person_id"),
			FirstName:      field("first_name"),
			LastName:       field("last_name"),
			Name:           field("name"),
			Title:          field("title"),
			LinkedInURL:    field("linkedin_url"),
			Email:          field("email"),
			EmailStatus:    domain.NormalizeEmailStatus(field("email_status")),
			OrganizationID: field("organization_id"),
			Company:        field("organization_name"),
			CompanyDomain:  field("organization_domain"),
			CompanyWebsite: field("organization_website"),
			CompanyCountry: field("organization_country"),
			CompanyCity:    field("organization_city"),
		})
	}

	return leads, nil
}

func record(lead domain.Lead) []string {
	return []string{
		lead.PersonID,
		lead.FirstName,
		lead.LastName,
		lead.Name,
		lead.Title,
		lead.LinkedInURL,
		lead.Email,
		string(lead.EmailStatus),
		lead.OrganizationID,
		lead.Company,
		lead.CompanyDomain,
		lead.CompanyWebsite,
		lead.CompanyCountry,
		lead.CompanyCity,
	}
}
