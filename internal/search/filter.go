package search

import (
	"strings"

	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/normalize"
)

// Criteria narrows a job list. Empty fields match everything.
type Criteria struct {
	Text     string
	Location string
	Skills   []string
}

func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Text) == "" && normalize.String(c.Location) == "" && len(normalize.Strings(c.Skills)) == 0
}

// Filter returns the listings that satisfy every predicate in c, in input
// order. The input slice is not modified.
func Filter(jobs []job.Listing, c Criteria) []job.Listing {
	text := strings.ToLower(strings.TrimSpace(c.Text))
	location := normalize.String(c.Location)
	skills := normalize.Strings(c.Skills)

	out := make([]job.Listing, 0, len(jobs))
	for _, j := range jobs {
		if !matchesText(j, text) {
			continue
		}
		if location != "" && normalize.String(j.Location) != location {
			continue
		}
		if !hasAllSkills(j, skills) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func matchesText(j job.Listing, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(j.Title), lowered) ||
		strings.Contains(strings.ToLower(j.Company), lowered)
}

func hasAllSkills(j job.Listing, skills []string) bool {
	for _, s := range skills {
		if !j.Skills.Contains(s) {
			return false
		}
	}
	return true
}
