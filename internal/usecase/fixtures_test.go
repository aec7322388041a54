package usecase

import (
	"context"
	"slices"
	"testing"
	"time"

	"jobboard/internal/batch"
	"jobboard/internal/repository"
	"jobboard/internal/store"
	"jobboard/internal/store/memory"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func putJob(t *testing.T, s *memory.Store, id string, data map[string]any) {
	t.Helper()
	base := map[string]any{
		repository.FieldTitle:       "Job " + id,
		repository.FieldCompany:     "Acme",
		repository.FieldLocation:    "Berlin",
		repository.FieldRecruiterID: "r1",
		repository.FieldPostedAt:    testNow.Add(-24 * time.Hour),
		repository.FieldValidUntil:  testNow.Add(30 * 24 * time.Hour),
	}
	for k, v := range data {
		base[k] = v
	}
	require.NoError(t, s.Put(repository.CollectionJobs, id, base))
}

func putSeeker(t *testing.T, s *memory.Store, id, name string, skills ...string) {
	t.Helper()
	require.NoError(t, s.Put(repository.CollectionUsers, id, map[string]any{
		"name":                 name,
		"resume":               "https://files.example/" + id + ".pdf",
		repository.FieldSkills: skills,
	}))
}

func putApplication(t *testing.T, s *memory.Store, jobID, seekerID, status string, appliedAt time.Time) {
	t.Helper()
	require.NoError(t, s.Put(repository.CollectionApplications, jobID+"_"+seekerID, map[string]any{
		repository.FieldJobID:       jobID,
		repository.FieldSeekerID:    seekerID,
		repository.FieldRecruiterID: "r1",
		repository.FieldStatus:      status,
		repository.FieldAppliedAt:   appliedAt,
	}))
}

// failingIn fails every QueryIn whose id list contains one of fail.
type failingIn struct {
	*memory.Store
	fail []string
}

func (f failingIn) QueryIn(ctx context.Context, collection, idField string, ids []string) ([]store.Document, error) {
	for _, id := range ids {
		if slices.Contains(f.fail, id) {
			return nil, store.ErrUnavailable
		}
	}
	return f.Store.QueryIn(ctx, collection, idField, ids)
}

func newApplications(s *memory.Store, q batch.Querier) *Applications {
	if q == nil {
		q = s
	}
	u := NewApplications(s, batch.NewFetcher(q, 2, nil), nil)
	u.now = fixedNow
	return u
}
