package domain

import "strings"

// ExclusionRules filter out candidates whose employer or title matches a
// keyword. Matching is case-insensitive substring containment.
type ExclusionRules struct {
	CompanyKeywords []string
	TitleKeywords   []string
}

// DefaultExclusionRules returns the built-in exclusion lists: global
// consultancies, system integrators and staffing firms on the company side,
// and roles outside end-customer buying cycles on the title side.
func DefaultExclusionRules() ExclusionRules {
	return ExclusionRules{
		CompanyKeywords: []string{
			"accenture", "deloitte", "pwc", "kpmg", "ernst", "ey", "capgemini", "ibm",
			"infosys", "tata consultancy", "tcs", "wipro", "cognizant", "ntt data", "atos",
			"cgi", "hcl", "tech mahindra", "sap consulting", "bearingpoint",
			"mckinsey", "bain", "bcg", "oliver wyman",
			"system integrator", "systems integrator", "si partner",
			"recruiting", "staffing", "headhunt", "talent acquisition",
		},
		TitleKeywords: []string{
			"recruiter", "talent", "sales development", "sdr", "bdr", "account executive",
			"marketing", "growth", "partner", "principal consultant", "consultant",
		},
	}
}

// ExcludesCompany reports whether the company name matches an excluded keyword.
func (r ExclusionRules) ExcludesCompany(company string) bool {
	return matchesAny(company, r.CompanyKeywords)
}

// ExcludesTitle reports whether the job title matches an excluded keyword.
func (r ExclusionRules) ExcludesTitle(title string) bool {
	return matchesAny(title, r.TitleKeywords)
}

func matchesAny(value string, keywords []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return false
	}
	for _, keyword := range keywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}
