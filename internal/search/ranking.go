package search

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"jobboard/internal/domain/matching"
)

type Mode string

const (
	ModeChronological Mode = "chronological"
	ModeRelevance     Mode = "relevance"
	ModeMatchCount    Mode = "match_count"
)

// ParseMode accepts the mode names case-insensitively. An empty string
// selects ModeChronological.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Mode(s) {
	case "":
		return ModeChronological, nil
	case ModeChronological, ModeRelevance, ModeMatchCount:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown ranking mode %q", s)
}

// Record is a value with the score and timestamp it is ranked by.
type Record[T any] struct {
	Value T
	Match matching.Result
	At    time.Time
}

// Rank returns a sorted copy of records. Equal keys keep their input order.
//
//   - ModeChronological: At descending.
//   - ModeRelevance: Percent descending, then MatchedCount descending, then At
//     descending.
//   - ModeMatchCount: MatchedCount descending.
//
// An unknown mode ranks chronologically.
func Rank[T any](records []Record[T], mode Mode) []Record[T] {
	out := make([]Record[T], len(records))
	copy(out, records)

	var less func(a, b Record[T]) bool
	switch mode {
	case ModeRelevance:
		less = byRelevance[T]
	case ModeMatchCount:
		less = byMatchCount[T]
	default:
		less = byTime[T]
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func byTime[T any](a, b Record[T]) bool {
	return a.At.After(b.At)
}

func byMatchCount[T any](a, b Record[T]) bool {
	return a.Match.MatchedCount > b.Match.MatchedCount
}

func byRelevance[T any](a, b Record[T]) bool {
	if a.Match.Percent != b.Match.Percent {
		return a.Match.Percent > b.Match.Percent
	}
	if a.Match.MatchedCount != b.Match.MatchedCount {
		return a.Match.MatchedCount > b.Match.MatchedCount
	}
	return a.At.After(b.At)
}
