package matching

import (
	"testing"

	"jobboard/internal/domain/skill"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		required  []string
		matched   int
		total     int
		percent   float64
	}{
		{name: "two of three", candidate: []string{"Python", "SQL"}, required: []string{"python", "sql", "docker"}, matched: 2, total: 3, percent: 66.67},
		{name: "full match", candidate: []string{"go"}, required: []string{"Go"}, matched: 1, total: 1, percent: 100},
		{name: "no match", candidate: []string{"rust"}, required: []string{"go", "sql"}, matched: 0, total: 2, percent: 0},
		{name: "no required skills", candidate: []string{"go"}, required: nil, matched: 0, total: 0, percent: 0},
		{name: "empty candidate", candidate: nil, required: []string{"go", "sql", "k8s"}, matched: 0, total: 3, percent: 0},
		{name: "one of three rounds down", candidate: []string{"go"}, required: []string{"go", "sql", "k8s"}, matched: 1, total: 3, percent: 33.33},
		{name: "candidate superset", candidate: []string{"go", "sql", "excel", "k8s"}, required: []string{"go", "sql"}, matched: 2, total: 2, percent: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(skill.New(tt.candidate...), skill.New(tt.required...))
			assert.Equal(t, tt.matched, got.MatchedCount)
			assert.Equal(t, tt.total, got.RequiredCount)
			assert.InDelta(t, tt.percent, got.Percent, 1e-9)
		})
	}
}

func TestScore_Bounds(t *testing.T) {
	sets := [][]string{nil, {"a"}, {"a", "b"}, {"b", "c", "d"}, {"A", " a ", "e"}}
	for _, c := range sets {
		for _, r := range sets {
			got := Score(skill.New(c...), skill.New(r...))
			assert.GreaterOrEqual(t, got.Percent, 0.0)
			assert.LessOrEqual(t, got.Percent, 100.0)
			assert.LessOrEqual(t, got.MatchedCount, got.RequiredCount)
			if got.RequiredCount == 0 {
				assert.Zero(t, got.Percent)
			}
		}
	}
}

func TestScore_ListsMatchedAndMissing(t *testing.T) {
	got := Score(skill.New("Python", "SQL"), skill.New("sql", "python", "docker"))
	assert.Equal(t, []string{"Python", "Sql"}, got.Matched)
	assert.Equal(t, []string{"Docker"}, got.Missing)
}
