package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcludesCompany(t *testing.T) {
	rules := DefaultExclusionRules()

	assert.True(t, rules.ExcludesCompany("Accenture GmbH"))
	assert.True(t, rules.ExcludesCompany("ACME Staffing Partners"))
	assert.True(t, rules.ExcludesCompany("  deloitte  "))
	assert.False(t, rules.ExcludesCompany("Jungheinrich AG"))
	assert.False(t, rules.ExcludesCompany(""))
}

func TestExcludesTitle(t *testing.T) {
	rules := DefaultExclusionRules()

	assert.True(t, rules.ExcludesTitle("Principal Consultant"))
	assert.True(t, rules.ExcludesTitle("Senior RECRUITER"))
	assert.True(t, rules.ExcludesTitle("VP Marketing"))
	assert.False(t, rules.ExcludesTitle("Chief Data Officer"))
	assert.False(t, rules.ExcludesTitle(""))
}

func TestExcludesTitleSubstringMatch(t *testing.T) {
	rules := ExclusionRules{TitleKeywords: []string{"consultant"}}

	// Substring containment, not word match.
	assert.True(t, rules.ExcludesTitle("SAP MDG Consultant (freelance)"))
	assert.False(t, rules.ExcludesTitle("Head of ERP"))
}
