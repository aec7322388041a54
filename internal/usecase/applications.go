package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"jobboard/internal/batch"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/user"
	"jobboard/internal/join"
	"jobboard/internal/repository"
	"jobboard/internal/search"
	"jobboard/internal/store"
)

const (
	StatusFilterAll = "All"

	DefaultJobTitle       = "Unknown Job"
	DefaultSeekerName     = "Unknown Applicant"
	DefaultAppliedTitle   = "Untitled Job"
	DefaultAppliedCompany = "Unknown Company"

	refSeeker = "seeker"
	refJob    = "job"
)

// EnrichedApplication is an application joined to its seeker profile and
// scored against the job's required skills.
type EnrichedApplication struct {
	application.Application
	JobTitle string          `json:"job_title"`
	Seeker   user.Seeker     `json:"seeker"`
	Match    matching.Result `json:"match"`
	// Partial is set when the seeker profile could not be read because the
	// store failed. A profile that does not exist is not partial.
	Partial bool `json:"partial,omitempty"`
}

// AppliedJob is one of a seeker's applications joined to its job listing.
type AppliedJob struct {
	Application application.Application `json:"application"`
	Job         job.Listing             `json:"job"`
	Partial     bool                    `json:"partial,omitempty"`
}

type RankOptions struct {
	Mode search.Mode
	// Status keeps only applications in this status. Empty or "All" keeps
	// every application.
	Status string
}

type Applications struct {
	store    store.DocumentStore
	apps     repository.ApplicationRepository
	jobs     repository.JobRepository
	profiles repository.ProfileRepository
	fetcher  *batch.Fetcher
	now      func() time.Time
	logger   *log.Logger
}

func NewApplications(s store.DocumentStore, fetcher *batch.Fetcher, logger *log.Logger) *Applications {
	return &Applications{
		store:    s,
		apps:     repository.NewDocumentApplicationRepository(s),
		jobs:     repository.NewDocumentJobRepository(s),
		profiles: repository.NewDocumentProfileRepository(s),
		fetcher:  fetcher,
		now:      time.Now,
		logger:   logger,
	}
}

// GetRankedApplications returns every application for jobID, enriched with
// the applicant profile and ordered by mode.
func (u *Applications) GetRankedApplications(ctx context.Context, jobID string, mode search.Mode) ([]EnrichedApplication, error) {
	return u.ListForJob(ctx, jobID, RankOptions{Mode: mode})
}

// ListForRecruiter is ListForJob restricted to the recruiter who posted the
// job.
func (u *Applications) ListForRecruiter(ctx context.Context, recruiterID, jobID string, opts RankOptions) ([]EnrichedApplication, error) {
	jobID = strings.TrimSpace(jobID)
	if recruiterID == "" || jobID == "" {
		return nil, ErrInvalidInput
	}
	listing, err := u.jobs.Get(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, storeErr("get job", err)
	}
	if listing.RecruiterID != recruiterID {
		return nil, ErrForbidden
	}
	return u.ListForJob(ctx, jobID, opts)
}

func (u *Applications) ListForJob(ctx context.Context, jobID string, opts RankOptions) ([]EnrichedApplication, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, ErrInvalidInput
	}
	want, err := parseStatusFilter(opts.Status)
	if err != nil {
		return nil, err
	}

	listing, err := u.jobs.Get(ctx, jobID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		listing = job.Listing{ID: jobID}
	case err != nil:
		return nil, storeErr("get job", err)
	}
	if listing.Title == "" {
		listing.Title = DefaultJobTitle
	}

	docs, err := u.store.QueryWhere(ctx, repository.CollectionApplications, repository.FieldJobID, store.OpEqual, jobID)
	if err != nil {
		return nil, storeErr("list applications", err)
	}
	if want != "" {
		kept := docs[:0:0]
		for _, d := range docs {
			if repository.DecodeApplication(d).Status == want {
				kept = append(kept, d)
			}
		}
		docs = kept
	}
	if len(docs) == 0 {
		return []EnrichedApplication{}, nil
	}

	res, err := u.fetcher.FetchByIDs(ctx, repository.CollectionUsers, join.Values(docs, repository.FieldSeekerID))
	if err != nil {
		return nil, storeErr("fetch applicants", err)
	}
	failed := failedIDs(res)

	keys := []join.Key{{
		Name:    refSeeker,
		Field:   repository.FieldSeekerID,
		Target:  repository.CollectionUsers,
		Default: store.Document{Data: map[string]any{"name": DefaultSeekerName}},
	}}
	joined := join.All(docs, map[string]map[string]store.Document{repository.CollectionUsers: res.Records}, keys)

	records := make([]search.Record[EnrichedApplication], 0, len(joined))
	partial := 0
	for _, e := range joined {
		app := repository.DecodeApplication(e.Primary)
		item := EnrichedApplication{
			Application: app,
			JobTitle:    listing.Title,
			Seeker:      repository.DecodeSeeker(e.Ref(refSeeker)),
		}
		if e.IsMissing(refSeeker) {
			if app.SeekerName != "" {
				item.Seeker.Name = app.SeekerName
			}
			if failed[app.SeekerID] {
				item.Partial = true
				partial++
			}
		}
		item.Match = matching.Score(item.Seeker.Skills, listing.Skills)
		records = append(records, search.Record[EnrichedApplication]{Value: item, Match: item.Match, At: app.AppliedAt})
	}

	if partial > 0 && u.logger != nil {
		u.logger.Printf("[Applications] partial applicant profiles job_id=%s unresolved=%d", jobID, partial)
	}

	ranked := search.Rank(records, opts.Mode)
	out := make([]EnrichedApplication, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Value)
	}
	return out, nil
}

// Apply records seekerID's application to jobID. An empty resumeLink falls
// back to the resume on the seeker's profile.
func (u *Applications) Apply(ctx context.Context, seekerID, jobID, resumeLink string) (application.Application, error) {
	seekerID = strings.TrimSpace(seekerID)
	jobID = strings.TrimSpace(jobID)
	if seekerID == "" || !application.ValidJobID(jobID) {
		return application.Application{}, ErrInvalidInput
	}

	listing, err := u.jobs.Get(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return application.Application{}, ErrJobNotFound
	}
	if err != nil {
		return application.Application{}, storeErr("get job", err)
	}
	now := u.now().UTC()
	if !listing.IsActive(now) {
		return application.Application{}, ErrJobExpired
	}

	seeker, err := u.profiles.GetSeeker(ctx, seekerID)
	if errors.Is(err, store.ErrNotFound) {
		return application.Application{}, ErrProfileNotFound
	}
	if err != nil {
		return application.Application{}, storeErr("get seeker", err)
	}
	if strings.TrimSpace(resumeLink) == "" {
		resumeLink = seeker.Resume
	}

	app := application.Application{
		ID:            application.CompositeID(jobID, seekerID),
		JobID:         jobID,
		SeekerID:      seekerID,
		RecruiterID:   listing.RecruiterID,
		Status:        application.StatusPending,
		AppliedAt:     now,
		ResumeLink:    strings.TrimSpace(resumeLink),
		SeekerName:    seeker.Name,
		RecruiterName: listing.RecruiterName,
	}
	switch err := u.apps.Create(ctx, app); {
	case errors.Is(err, store.ErrAlreadyExists):
		return application.Application{}, ErrAlreadyApplied
	case errors.Is(err, repository.ErrInvalidRecord):
		return application.Application{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case err != nil:
		return application.Application{}, storeErr("create application", err)
	}

	if u.logger != nil {
		u.logger.Printf("[Applications] applied job_id=%s seeker_id=%s", jobID, seekerID)
	}
	return app, nil
}

// Get returns one application joined to its job and applicant profile.
// Only the recruiter who owns it and the applicant may read it. A job or
// profile that cannot be read degrades to a placeholder.
func (u *Applications) Get(ctx context.Context, callerID, applicationID string) (EnrichedApplication, error) {
	callerID, applicationID = strings.TrimSpace(callerID), strings.TrimSpace(applicationID)
	if callerID == "" || applicationID == "" {
		return EnrichedApplication{}, ErrInvalidInput
	}

	primary, err := u.store.GetDocument(ctx, repository.CollectionApplications, applicationID)
	if errors.Is(err, store.ErrNotFound) {
		return EnrichedApplication{}, ErrApplicationNotFound
	}
	if err != nil {
		return EnrichedApplication{}, storeErr("get application", err)
	}
	app := repository.DecodeApplication(primary)
	if callerID != app.RecruiterID && callerID != app.SeekerID {
		return EnrichedApplication{}, ErrForbidden
	}

	records := map[string]map[string]store.Document{}
	partial := false
	for _, ref := range []struct{ collection, id string }{
		{repository.CollectionJobs, app.JobID},
		{repository.CollectionUsers, app.SeekerID},
	} {
		if ref.id == "" {
			continue
		}
		d, err := u.store.GetDocument(ctx, ref.collection, ref.id)
		switch {
		case err == nil:
			records[ref.collection] = map[string]store.Document{ref.id: d}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return EnrichedApplication{}, err
		case !errors.Is(err, store.ErrNotFound):
			partial = true
			if u.logger != nil {
				u.logger.Printf("[Applications] unresolved reference id=%s collection=%s err=%v", app.ID, ref.collection, err)
			}
		}
	}

	e := join.Join(primary, records, []join.Key{
		{
			Name:    refJob,
			Field:   repository.FieldJobID,
			Target:  repository.CollectionJobs,
			Default: store.Document{Data: map[string]any{repository.FieldTitle: DefaultJobTitle}},
		},
		{
			Name:    refSeeker,
			Field:   repository.FieldSeekerID,
			Target:  repository.CollectionUsers,
			Default: store.Document{Data: map[string]any{"name": DefaultSeekerName}},
		},
	})

	listing := repository.DecodeListing(e.Ref(refJob))
	if listing.Title == "" {
		listing.Title = DefaultJobTitle
	}
	item := EnrichedApplication{
		Application: app,
		JobTitle:    listing.Title,
		Seeker:      repository.DecodeSeeker(e.Ref(refSeeker)),
		Partial:     partial,
	}
	if e.IsMissing(refSeeker) && app.SeekerName != "" {
		item.Seeker.Name = app.SeekerName
	}
	item.Match = matching.Score(item.Seeker.Skills, listing.Skills)
	return item, nil
}

// UpdateStatus moves an application to status on behalf of the recruiter
// who owns it.
func (u *Applications) UpdateStatus(ctx context.Context, recruiterID, applicationID, status string) (application.Application, error) {
	to, err := application.ParseStatus(status)
	if err != nil || recruiterID == "" || strings.TrimSpace(applicationID) == "" {
		return application.Application{}, ErrInvalidInput
	}

	app, err := u.apps.Get(ctx, applicationID)
	if errors.Is(err, store.ErrNotFound) {
		return application.Application{}, ErrApplicationNotFound
	}
	if err != nil {
		return application.Application{}, storeErr("get application", err)
	}
	if app.RecruiterID != recruiterID {
		return application.Application{}, ErrForbidden
	}
	if !application.ValidTransition(app.Status, to) {
		return application.Application{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, to)
	}

	err = u.apps.UpdateStatus(ctx, app.ID, to, u.now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		return application.Application{}, ErrApplicationNotFound
	}
	if err != nil {
		return application.Application{}, storeErr("update status", err)
	}

	if u.logger != nil {
		u.logger.Printf("[Applications] status updated id=%s from=%s to=%s", app.ID, app.Status, to)
	}
	app.Status = to
	return app, nil
}

// ListForSeeker returns the seeker's applications joined to their jobs,
// newest first.
func (u *Applications) ListForSeeker(ctx context.Context, seekerID string) ([]AppliedJob, error) {
	seekerID = strings.TrimSpace(seekerID)
	if seekerID == "" {
		return nil, ErrInvalidInput
	}

	docs, err := u.store.QueryWhere(ctx, repository.CollectionApplications, repository.FieldSeekerID, store.OpEqual, seekerID)
	if err != nil {
		return nil, storeErr("list applications", err)
	}
	if len(docs) == 0 {
		return []AppliedJob{}, nil
	}

	res, err := u.fetcher.FetchByIDs(ctx, repository.CollectionJobs, join.Values(docs, repository.FieldJobID))
	if err != nil {
		return nil, storeErr("fetch jobs", err)
	}
	failed := failedIDs(res)

	keys := []join.Key{{
		Name:   refJob,
		Field:  repository.FieldJobID,
		Target: repository.CollectionJobs,
		Default: store.Document{Data: map[string]any{
			repository.FieldTitle:   DefaultAppliedTitle,
			repository.FieldCompany: DefaultAppliedCompany,
		}},
	}}
	joined := join.All(docs, map[string]map[string]store.Document{repository.CollectionJobs: res.Records}, keys)

	records := make([]search.Record[AppliedJob], 0, len(joined))
	for _, e := range joined {
		app := repository.DecodeApplication(e.Primary)
		listing := repository.DecodeListing(e.Ref(refJob))
		if listing.Title == "" {
			listing.Title = DefaultAppliedTitle
		}
		if listing.Company == "" {
			listing.Company = DefaultAppliedCompany
		}
		item := AppliedJob{
			Application: app,
			Job:         listing,
			Partial:     e.IsMissing(refJob) && failed[app.JobID],
		}
		records = append(records, search.Record[AppliedJob]{Value: item, At: app.AppliedAt})
	}

	ranked := search.Rank(records, search.ModeChronological)
	out := make([]AppliedJob, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Value)
	}
	return out, nil
}

func parseStatusFilter(s string) (application.Status, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, StatusFilterAll) {
		return "", nil
	}
	st, err := application.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return st, nil
}

// failedIDs collects the ids of every chunk the fetcher could not serve.
func failedIDs(res batch.Result) map[string]bool {
	if !res.Partial() {
		return nil
	}
	out := make(map[string]bool)
	for _, f := range res.Failed {
		for _, id := range f.IDs {
			out[id] = true
		}
	}
	return out
}
