package matching

import (
	"math"

	"jobboard/internal/domain/skill"
)

type Result struct {
	MatchedCount  int
	RequiredCount int
	// Percent is in [0,100] rounded to two decimals. A job with no required
	// skills scores 0.
	Percent float64
	Matched []string
	Missing []string
}

// Score compares a candidate's skills against the required set.
func Score(candidate, required skill.Set) Result {
	matched, missing := required.Split(candidate)

	res := Result{
		MatchedCount:  len(matched),
		RequiredCount: required.Len(),
		Matched:       matched,
		Missing:       missing,
	}
	if res.RequiredCount == 0 {
		return res
	}
	res.Percent = round2(float64(res.MatchedCount) / float64(res.RequiredCount) * 100)
	return res
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
