package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobboard/internal/batch"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/savedjob"
	"jobboard/internal/join"
	"jobboard/internal/repository"
	"jobboard/internal/search"
	"jobboard/internal/store"
)

// EnrichedSavedJob is a bookmarked listing with the time it was saved.
type EnrichedSavedJob struct {
	job.Listing
	SavedID string    `json:"saved_id"`
	SavedAt time.Time `json:"saved_at"`
	// Partial marks a bookmark whose listing could not be read because the
	// store failed; only the job id is known.
	Partial bool `json:"partial,omitempty"`
}

type SavedJobs struct {
	saved   repository.SavedJobRepository
	jobs    repository.JobRepository
	fetcher *batch.Fetcher
	now     func() time.Time
	logger  *log.Logger
}

func NewSavedJobs(s store.DocumentStore, fetcher *batch.Fetcher, logger *log.Logger) *SavedJobs {
	return &SavedJobs{
		saved:   repository.NewDocumentSavedJobRepository(s),
		jobs:    repository.NewDocumentJobRepository(s),
		fetcher: fetcher,
		now:     time.Now,
		logger:  logger,
	}
}

// GetSavedJobsWithMeta returns userID's bookmarked listings, most recently
// saved first. Bookmarks whose listing no longer exists are left out.
func (u *SavedJobs) GetSavedJobsWithMeta(ctx context.Context, userID string) ([]EnrichedSavedJob, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}

	refs, err := u.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("list saved jobs", err)
	}
	refs = dedupeRefs(userID, refs)
	if len(refs) == 0 {
		return []EnrichedSavedJob{}, nil
	}

	primaries := make([]store.Document, 0, len(refs))
	for _, r := range refs {
		primaries = append(primaries, store.Document{ID: r.ID, Data: map[string]any{repository.FieldSavedJobID: r.JobID}})
	}
	res, err := u.fetcher.FetchByIDs(ctx, repository.CollectionJobs, join.Values(primaries, repository.FieldSavedJobID))
	if err != nil {
		return nil, storeErr("fetch saved jobs", err)
	}
	failed := failedIDs(res)

	keys := []join.Key{{Name: refJob, Field: repository.FieldSavedJobID, Target: repository.CollectionJobs}}
	joined := join.All(primaries, map[string]map[string]store.Document{repository.CollectionJobs: res.Records}, keys)

	records := make([]search.Record[EnrichedSavedJob], 0, len(joined))
	for i, e := range joined {
		ref := refs[i]
		item := EnrichedSavedJob{SavedID: ref.ID, SavedAt: ref.SavedAt}
		if e.IsMissing(refJob) {
			if !failed[ref.JobID] {
				continue
			}
			item.Listing = job.Listing{ID: ref.JobID}
			item.Partial = true
		} else {
			item.Listing = repository.DecodeListing(e.Ref(refJob))
		}
		records = append(records, search.Record[EnrichedSavedJob]{Value: item, At: ref.SavedAt})
	}

	ranked := search.Rank(records, search.ModeChronological)
	out := make([]EnrichedSavedJob, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Value)
	}
	return out, nil
}

// Save bookmarks jobID for userID. Saving an already saved job returns the
// existing bookmark, also when another request created it first.
func (u *SavedJobs) Save(ctx context.Context, userID, jobID string) (EnrichedSavedJob, error) {
	userID, jobID = strings.TrimSpace(userID), strings.TrimSpace(jobID)
	if userID == "" || !application.ValidJobID(jobID) {
		return EnrichedSavedJob{}, ErrInvalidInput
	}

	listing, err := u.jobs.Get(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return EnrichedSavedJob{}, ErrJobNotFound
	}
	if err != nil {
		return EnrichedSavedJob{}, storeErr("get job", err)
	}

	existing, ok, err := u.saved.Find(ctx, userID, jobID)
	if err != nil {
		return EnrichedSavedJob{}, storeErr("find saved job", err)
	}
	if ok {
		return EnrichedSavedJob{Listing: listing, SavedID: existing.ID, SavedAt: existing.SavedAt}, nil
	}

	existing.UserID = userID
	existing.JobID = jobID
	existing.SavedAt = u.now().UTC()
	ref, err := u.saved.Create(ctx, existing)
	if errors.Is(err, store.ErrAlreadyExists) {
		ref, ok, err = u.saved.Find(ctx, userID, jobID)
		if err == nil && !ok {
			err = store.ErrNotFound
		}
	}
	if err != nil {
		return EnrichedSavedJob{}, storeErr("save job", err)
	}
	if u.logger != nil {
		u.logger.Printf("[SavedJobs] saved user_id=%s job_id=%s", userID, jobID)
	}
	return EnrichedSavedJob{Listing: listing, SavedID: ref.ID, SavedAt: ref.SavedAt}, nil
}

// Unsave removes every bookmark userID holds for jobID, if any.
func (u *SavedJobs) Unsave(ctx context.Context, userID, jobID string) error {
	userID, jobID = strings.TrimSpace(userID), strings.TrimSpace(jobID)
	if userID == "" || jobID == "" {
		return ErrInvalidInput
	}
	refs, err := u.saved.FindAll(ctx, userID, jobID)
	if err != nil {
		return storeErr("find saved job", err)
	}
	if len(refs) == 0 {
		return nil
	}
	for _, ref := range refs {
		if err := u.saved.Delete(ctx, ref.ID); err != nil {
			return storeErr("unsave job", err)
		}
	}
	if u.logger != nil {
		u.logger.Printf("[SavedJobs] unsaved user_id=%s job_id=%s", userID, jobID)
	}
	return nil
}

func (u *SavedJobs) IsSaved(ctx context.Context, userID, jobID string) (bool, error) {
	userID, jobID = strings.TrimSpace(userID), strings.TrimSpace(jobID)
	if userID == "" || jobID == "" {
		return false, ErrInvalidInput
	}
	_, ok, err := u.saved.Find(ctx, userID, jobID)
	if err != nil {
		return false, storeErr("find saved job", err)
	}
	return ok, nil
}

// dedupeRefs keeps one bookmark per job, preferring the keyed document over
// copies older clients stored under random ids.
func dedupeRefs(userID string, refs []savedjob.Ref) []savedjob.Ref {
	pos := make(map[string]int, len(refs))
	out := make([]savedjob.Ref, 0, len(refs))
	for _, r := range refs {
		i, seen := pos[r.JobID]
		if !seen {
			pos[r.JobID] = len(out)
			out = append(out, r)
			continue
		}
		if r.ID == savedjob.RefID(userID, r.JobID) {
			out[i] = r
		}
	}
	return out
}
