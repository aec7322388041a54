package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/skill"
	"jobboard/internal/repository"
	"jobboard/internal/search"
	"jobboard/internal/store"
)

// ScoredListing is a listing with the seeker's match against its skills.
type ScoredListing struct {
	job.Listing
	Match matching.Result `json:"match"`
}

type FilterOptions struct {
	Locations []string `json:"locations"`
	Skills    []string `json:"skills"`
}

const (
	JobStatusActive = "Active"
	JobStatusClosed = "Closed"
)

// PostedJob is one of a recruiter's own listings with its state at the time
// of the request.
type PostedJob struct {
	job.Listing
	Status string `json:"status"`
}

// ActiveJobSource lists the listings open at now.
type ActiveJobSource interface {
	ListActive(ctx context.Context, now time.Time) ([]job.Listing, error)
}

type Jobs struct {
	source   ActiveJobSource
	jobs     repository.JobRepository
	profiles repository.ProfileRepository
	now      func() time.Time
	logger   *log.Logger
}

func NewJobs(source ActiveJobSource, jobs repository.JobRepository, profiles repository.ProfileRepository, logger *log.Logger) *Jobs {
	return &Jobs{source: source, jobs: jobs, profiles: profiles, now: time.Now, logger: logger}
}

// ListActive returns open listings with a location, newest first.
func (u *Jobs) ListActive(ctx context.Context) ([]job.Listing, error) {
	now := u.now().UTC()
	all, err := u.source.ListActive(ctx, now)
	if err != nil {
		return nil, storeErr("list active jobs", err)
	}

	records := make([]search.Record[job.Listing], 0, len(all))
	for _, j := range all {
		if j.Location == "" || !j.IsActive(now) {
			continue
		}
		records = append(records, search.Record[job.Listing]{Value: j, At: j.PostedAt})
	}
	ranked := search.Rank(records, search.ModeChronological)
	out := make([]job.Listing, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Value)
	}
	return out, nil
}

// GetFilteredJobs applies c to allJobs.
func (u *Jobs) GetFilteredJobs(allJobs []job.Listing, c search.Criteria) []job.Listing {
	return search.Filter(allJobs, c)
}

// GetRecommendedJobs scores every listing against seekerSkills and keeps
// those sharing at least one skill, most matched skills first.
func (u *Jobs) GetRecommendedJobs(allJobs []job.Listing, seekerSkills skill.Set) []ScoredListing {
	records := make([]search.Record[ScoredListing], 0, len(allJobs))
	for _, j := range allJobs {
		m := matching.Score(seekerSkills, j.Skills)
		if m.MatchedCount == 0 {
			continue
		}
		records = append(records, search.Record[ScoredListing]{
			Value: ScoredListing{Listing: j, Match: m},
			Match: m,
			At:    j.PostedAt,
		})
	}
	ranked := search.Rank(records, search.ModeMatchCount)
	out := make([]ScoredListing, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Value)
	}
	return out
}

// FilterOptions lists the distinct locations and skills of allJobs, sorted.
func (u *Jobs) FilterOptions(allJobs []job.Listing) FilterOptions {
	locs := make(map[string]struct{})
	skills := make(map[string]struct{})
	for _, j := range allJobs {
		if j.Location != "" {
			locs[j.Location] = struct{}{}
		}
		for _, s := range j.Skills.Names() {
			skills[s] = struct{}{}
		}
	}
	return FilterOptions{Locations: sortedKeys(locs), Skills: sortedKeys(skills)}
}

// Search lists the active jobs matching c.
func (u *Jobs) Search(ctx context.Context, c search.Criteria) ([]job.Listing, error) {
	all, err := u.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return u.GetFilteredJobs(all, c), nil
}

func (u *Jobs) Options(ctx context.Context) (FilterOptions, error) {
	all, err := u.ListActive(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	return u.FilterOptions(all), nil
}

// Recommend scores the active jobs against skills. With no skills given
// the seeker's profile skills are used.
func (u *Jobs) Recommend(ctx context.Context, seekerID string, skills []string) ([]ScoredListing, error) {
	set := skill.New(skills...)
	if set.IsEmpty() {
		if strings.TrimSpace(seekerID) == "" {
			return nil, ErrInvalidInput
		}
		seeker, err := u.profiles.GetSeeker(ctx, seekerID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		if err != nil {
			return nil, storeErr("get seeker", err)
		}
		set = seeker.Skills
	}

	all, err := u.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := u.GetRecommendedJobs(all, set)
	if u.logger != nil {
		u.logger.Printf("[Jobs] recommendations seeker_id=%s skills=%d results=%d", seekerID, set.Len(), len(out))
	}
	return out, nil
}

// ListForRecruiter returns every listing recruiterID posted, expired ones
// included, newest first. A listing is Closed once validUntil has passed or
// when it has none.
func (u *Jobs) ListForRecruiter(ctx context.Context, recruiterID string) ([]PostedJob, error) {
	recruiterID = strings.TrimSpace(recruiterID)
	if recruiterID == "" {
		return nil, ErrInvalidInput
	}
	all, err := u.jobs.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, storeErr("list recruiter jobs", err)
	}

	now := u.now().UTC()
	records := make([]search.Record[PostedJob], 0, len(all))
	for _, j := range all {
		status := JobStatusClosed
		if j.IsActive(now) {
			status = JobStatusActive
		}
		records = append(records, search.Record[PostedJob]{Value: PostedJob{Listing: j, Status: status}, At: j.PostedAt})
	}
	ranked := search.Rank(records, search.ModeChronological)
	out := make([]PostedJob, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Value)
	}
	return out, nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
