package domain

import (
	"fmt"
	"time"
)

// RecipeMode names a built-in audience segment.
type RecipeMode string

// Built-in recipe modes.
const (
	// RecipeHighIntent targets senior data/ERP leadership at enterprise-size
	// companies with high-deliverability emails.
	RecipeHighIntent RecipeMode = "high_intent"

	// RecipeScalable widens titles and company sizes for volume.
	RecipeScalable RecipeMode = "scalable"

	// RecipeHiringSignal adds a recent-hiring filter: companies that posted
	// master-data/governance roles within the lookback window.
	RecipeHiringSignal RecipeMode = "hiring_signal"
)

// hiringSignalLookback is the rolling window for the hiring-signal filter.
const hiringSignalLookback = 120 * 24 * time.Hour

// RecipeModes lists the valid mode names, for CLI validation and help text.
func RecipeModes() []string {
	return []string{
		string(RecipeHighIntent),
		string(RecipeScalable),
		string(RecipeHiringSignal),
	}
}

// Recipe is a named, fixed bundle of search filters. Filters hold the flat
// key->value (or key->list) structure the search API expects.
type Recipe struct {
	Mode    RecipeMode
	Filters map[string]any
}

// BuildRecipe resolves a mode into its filter set. The hiring-signal window
// is anchored on now so re-runs shift with the calendar.
func BuildRecipe(mode RecipeMode, now time.Time) (*Recipe, error) {
	countries := targetCountries()
	deliverable := []string{
		string(EmailStatusVerified),
		string(EmailStatusLikelyToEngage),
	}

	switch mode {
	case RecipeHighIntent:
		return &Recipe{Mode: mode, Filters: map[string]any{
			"organization_locations":            countries,
			"person_titles":                     coreTitles(),
			"include_similar_titles":            false,
			"contact_email_status":              deliverable,
			"organization_industries":           targetIndustries(),
			"organization_num_employees_ranges": enterpriseEmployeeRanges(),
			"per_page":                          100,
		}}, nil

	case RecipeScalable:
		return &Recipe{Mode: mode, Filters: map[string]any{
			"organization_locations":            countries,
			"person_titles":                     expandedTitles(),
			"include_similar_titles":            true,
			"contact_email_status":              deliverable,
			"organization_industries":           targetIndustries(),
			"organization_num_employees_ranges": midToEnterpriseEmployeeRanges(),
			"per_page":                          100,
		}}, nil

	case RecipeHiringSignal:
		since := now.UTC().Add(-hiringSignalLookback).Format("2006-01-02")
		return &Recipe{Mode: mode, Filters: map[string]any{
			"organization_locations":            countries,
			"person_titles":                     coreTitles(),
			"include_similar_titles":            true,
			"contact_email_status":              deliverable,
			"organization_industries":           targetIndustries(),
			"organization_num_employees_ranges": midToEnterpriseEmployeeRanges(),
			"q_organization_job_titles": []string{
				"master data", "data governance", "data steward", "data quality", "mdm", "sap mdg",
			},
			"organization_job_posted_at_range_min": since,
			"per_page":                             100,
		}}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownRecipe, mode)
}

// targetCountries covers the regions served: Europe, Middle East, Asia.
// Location strings can be country names or "City, Country" formats.
func targetCountries() []string {
	return []string{
		"Germany", "Austria", "Switzerland", "Netherlands", "Belgium", "France",
		"United Kingdom", "Ireland", "Spain", "Italy", "Portugal",
		"Sweden", "Norway", "Denmark", "Finland", "Poland", "Czech Republic",
		"Hungary", "Romania", "Greece", "Turkey",
		"United Arab Emirates", "Saudi Arabia", "Qatar", "Kuwait", "Bahrain", "Oman",
		"Israel", "Jordan", "Lebanon",
		"India", "Singapore", "Malaysia", "Indonesia", "Thailand", "Vietnam",
		"Philippines", "Japan", "South Korea", "Hong Kong", "Taiwan",
	}
}

// coreTitles is intentionally redundant to catch title formatting variants.
func coreTitles() []string {
	return []string{
		"chief data officer", "cdo",
		"chief information officer", "cio",
		"head of data governance", "director data governance", "data governance lead",
		"master data manager", "master data lead", "mdm lead", "mdm manager",
		"data quality manager", "data quality lead",
		"head of erp", "erp director", "head of it applications", "it applications director",
		"sap enterprise architect", "enterprise architect sap", "head of sap", "sap director",
		"process owner", "procurement process owner", "finance process owner", "supply chain process owner",
	}
}

func expandedTitles() []string {
	return append(coreTitles(),
		"data manager", "data governance manager", "mdm architect",
		"sap architect", "sap solution architect", "erp manager", "it manager erp",
		"head of master data", "data steward manager",
	)
}

// targetIndustries must match the directory's stored industry values, which
// can be case-sensitive. Start broad, then tighten.
func targetIndustries() []string {
	return []string{
		"automotive",
		"chemicals",
		"pharmaceuticals",
		"medical devices",
		"oil & energy",
		"utilities",
		"logistics & supply chain",
		"food & beverages",
		"food production",
		"consumer goods",
		"retail",
		"telecommunications",
		"banking",
		"insurance",
		"industrial automation",
		"machinery",
		"mining & metals",
		"aviation & aerospace",
		"defense & space",
	}
}

// Employee ranges use the directory's "min,max" convention; "10001" is the
// common encoding for 10k+.
func enterpriseEmployeeRanges() []string {
	return []string{"1001,2000", "2001,5000", "5001,10000", "10001"}
}

func midToEnterpriseEmployeeRanges() []string {
	return []string{"201,500", "501,1000", "1001,2000", "2001,5000", "5001,10000", "10001"}
}
