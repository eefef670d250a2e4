package domain

import (
	"regexp"
	"strings"
)

// EmailStatus is the deliverability confidence reported by the people
// directory for a contact email.
type EmailStatus string

// Known deliverability statuses. The directory may report values outside
// this set; they are carried through verbatim and treated as undeliverable.
const (
	EmailStatusVerified       EmailStatus = "verified"
	EmailStatusLikelyToEngage EmailStatus = "likely to engage"
	EmailStatusUnverified     EmailStatus = "unverified"
	EmailStatusUnavailable    EmailStatus = "unavailable"
)

// Deliverable reports whether the status is trusted enough for outreach.
func (s EmailStatus) Deliverable() bool {
	switch s {
	case EmailStatusVerified, EmailStatusLikelyToEngage:
		return true
	}
	return false
}

// NormalizeEmailStatus lower-cases and trims a raw status value.
func NormalizeEmailStatus(raw string) EmailStatus {
	return EmailStatus(strings.ToLower(strings.TrimSpace(raw)))
}

// Candidate is a raw people-search hit. It only lives for the duration of a
// collection run; surviving candidates are enriched into Leads.
type Candidate struct {
	// ID is the directory's person identifier. Empty when the payload
	// carried none of the known id fields; such candidates are skipped.
	ID      string
	Title   string
	Company string

	// Raw is the original attribute bag, kept for defensive re-reads.
	Raw map[string]any
}

// Lead is one enriched, persisted prospect record.
type Lead struct {
	PersonID    string
	FirstName   string
	LastName    string
	Name        string
	Title       string
	LinkedInURL string

	Email       string
	EmailStatus EmailStatus

	OrganizationID string
	Company        string
	CompanyDomain  string
	CompanyWebsite string
	CompanyCountry string
	CompanyCity    string
}

// emailPattern is deliberately loose: local@domain.tld with no whitespace.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether addr has a plausible local@domain.tld shape.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(strings.TrimSpace(addr))
}

// NormalizeEmail trims and lower-cases an address for set membership tests.
func NormalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
