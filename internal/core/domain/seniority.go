package domain

import "strings"

// seniorityBand maps a title keyword to a priority score. Bands are checked
// in order; the first match wins.
type seniorityBand struct {
	keyword string
	score   int
}

var seniorityBands = []seniorityBand{
	{"chief", 5},
	{"cdo", 5},
	{"cio", 5},
	{"vp", 4},
	{"director", 3},
	{"head", 3},
	{"manager", 2},
	{"lead", 2},
}

// SeniorityScore ranks a job title for send priority. Titles that match no
// band score 1, so every lead remains sendable, just last in line.
func SeniorityScore(title string) int {
	normalized := strings.ToLower(title)
	for _, band := range seniorityBands {
		if strings.Contains(normalized, band.keyword) {
			return band.score
		}
	}
	return 1
}
