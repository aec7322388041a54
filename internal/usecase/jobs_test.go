package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/skill"
	"jobboard/internal/repository"
	"jobboard/internal/search"
	"jobboard/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	data    map[string][]byte
	locked  map[string]bool
	sets    int
	failGet bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, locked: map[string]bool{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if c.failGet {
		return false, errors.New("redis down")
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	c.sets++
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	delete(c.locked, key)
	return nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	if c.locked[key] {
		return false, nil
	}
	c.locked[key] = true
	return true, nil
}

func listingIDs(jobs []job.Listing) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func seedJobs(t *testing.T, s *memory.Store) {
	putJob(t, s, "go-dev", map[string]any{
		repository.FieldTitle:    "Go Developer",
		repository.FieldCompany:  "Gopher Inc",
		repository.FieldLocation: "berlin",
		repository.FieldSkills:   []string{"Go", "SQL", "Docker"},
		repository.FieldPostedAt: testNow.Add(-1 * time.Hour),
	})
	putJob(t, s, "analyst", map[string]any{
		repository.FieldTitle:    "Data Analyst",
		repository.FieldCompany:  "Acme",
		repository.FieldLocation: "new  york",
		repository.FieldSkills:   []string{"SQL", "Excel"},
		repository.FieldPostedAt: testNow.Add(-2 * time.Hour),
	})
	putJob(t, s, "remote", map[string]any{
		repository.FieldTitle:    "Remote Go",
		repository.FieldLocation: "",
		repository.FieldSkills:   []string{"Go"},
	})
	putJob(t, s, "expired", map[string]any{
		repository.FieldSkills:     []string{"Go"},
		repository.FieldValidUntil: testNow.Add(-time.Minute),
	})
}

func newJobs(s *memory.Store, cache SnapshotCache) *Jobs {
	snap := NewSnapshot(repository.NewDocumentJobRepository(s), cache, time.Minute, nil)
	snap.now = fixedNow
	snap.lockWait = 0
	u := NewJobs(snap, repository.NewDocumentJobRepository(s), repository.NewDocumentProfileRepository(s), nil)
	u.now = fixedNow
	return u
}

func TestJobs_ListActiveDropsExpiredAndUnlocated(t *testing.T) {
	s := memory.New(10)
	seedJobs(t, s)

	got, err := newJobs(s, nil).ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"go-dev", "analyst"}, listingIDs(got))
	assert.Equal(t, "New York", got[1].Location)
}

func TestJobs_Search(t *testing.T) {
	s := memory.New(10)
	seedJobs(t, s)
	u := newJobs(s, nil)

	got, err := u.Search(context.Background(), search.Criteria{Text: "acme"})
	require.NoError(t, err)
	assert.Equal(t, []string{"analyst"}, listingIDs(got))

	got, err = u.Search(context.Background(), search.Criteria{Skills: []string{"sql"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"go-dev", "analyst"}, listingIDs(got))

	got, err = u.Search(context.Background(), search.Criteria{Location: "BERLIN", Skills: []string{"excel"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJobs_GetRecommendedJobs(t *testing.T) {
	jobs := []job.Listing{
		{ID: "a", Skills: skill.New("Go")},
		{ID: "b", Skills: skill.New("Go", "SQL", "Docker")},
		{ID: "c", Skills: skill.New("Excel")},
		{ID: "d", Skills: skill.New("SQL", "Go")},
	}
	got := (&Jobs{}).GetRecommendedJobs(jobs, skill.New("go", "sql", "docker"))

	ids := make([]string, 0, len(got))
	for _, g := range got {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{"b", "d", "a"}, ids)
	assert.Equal(t, 3, got[0].Match.MatchedCount)
	assert.Equal(t, 100.0, got[2].Match.Percent)

	assert.Empty(t, (&Jobs{}).GetRecommendedJobs(jobs, skill.New()))
}

func TestJobs_RecommendFallsBackToProfileSkills(t *testing.T) {
	s := memory.New(10)
	seedJobs(t, s)
	putSeeker(t, s, "u1", "Ana", "excel")
	u := newJobs(s, nil)

	got, err := u.Recommend(context.Background(), "u1", nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "analyst", got[0].ID)

	got, err = u.Recommend(context.Background(), "u1", []string{"docker"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "go-dev", got[0].ID)

	_, err = u.Recommend(context.Background(), "ghost", nil)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestJobs_FilterOptions(t *testing.T) {
	s := memory.New(10)
	seedJobs(t, s)

	opts, err := newJobs(s, nil).Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Berlin", "New York"}, opts.Locations)
	assert.Equal(t, []string{"Docker", "Excel", "Go", "Sql"}, opts.Skills)
}

func TestSnapshot_ServesCachedCopy(t *testing.T) {
	s := memory.New(10)
	seedJobs(t, s)
	cache := newFakeCache()
	u := newJobs(s, cache)

	first, err := u.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.False(t, cache.locked[snapshotLockKey], "lock released after store")

	putJob(t, s, "new", map[string]any{repository.FieldPostedAt: testNow})
	second, err := u.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, listingIDs(first), listingIDs(second), "served from cache")

	snap := u.source.(*Snapshot)
	n, ok, err := snap.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	third, err := u.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", third[0].ID)
}

func TestSnapshot_DropsListingsExpiredSinceRefresh(t *testing.T) {
	s := memory.New(10)
	seedJobs(t, s)
	cache := newFakeCache()
	snap := NewSnapshot(repository.NewDocumentJobRepository(s), cache, time.Minute, nil)
	snap.now = fixedNow

	_, _, err := snap.Refresh(context.Background())
	require.NoError(t, err)

	later := testNow.Add(60 * 24 * time.Hour)
	got, err := snap.ListActive(context.Background(), later)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSnapshot_RefreshSkipsWhenLocked(t *testing.T) {
	s := memory.New(10)
	cache := newFakeCache()
	cache.locked[snapshotLockKey] = true
	snap := NewSnapshot(repository.NewDocumentJobRepository(s), cache, time.Minute, nil)

	n, ok, err := snap.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, n)
	assert.Zero(t, cache.sets)
}

func TestSnapshot_CacheErrorFallsBackToStore(t *testing.T) {
	s := memory.New(10)
	seedJobs(t, s)
	cache := newFakeCache()
	cache.failGet = true

	got, err := newJobs(s, cache).ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestJobs_ListForRecruiter(t *testing.T) {
	s := memory.New(10)
	seedJobs(t, s)
	putJob(t, s, "other", map[string]any{repository.FieldRecruiterID: "r2"})
	putJob(t, s, "no-expiry", map[string]any{
		repository.FieldValidUntil: nil,
		repository.FieldPostedAt:   testNow.Add(-48 * time.Hour),
	})
	u := newJobs(s, nil)

	got, err := u.ListForRecruiter(context.Background(), "r1")
	require.NoError(t, err)

	status := map[string]string{}
	ids := make([]string, 0, len(got))
	for _, j := range got {
		ids = append(ids, j.ID)
		status[j.ID] = j.Status
	}
	assert.Equal(t, []string{"go-dev", "analyst", "expired", "remote", "no-expiry"}, ids)
	assert.Equal(t, JobStatusActive, status["go-dev"])
	assert.Equal(t, JobStatusActive, status["remote"], "listings without a location are still the recruiter's")
	assert.Equal(t, JobStatusClosed, status["expired"])
	assert.Equal(t, JobStatusClosed, status["no-expiry"])

	_, err = u.ListForRecruiter(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
