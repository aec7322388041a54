package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/repository"
	"jobboard/internal/store"
)

const (
	DefaultRecruiterName = "Recruiter"
	DefaultSeekerTitle   = "Job Seeker"
)

type RecruiterDashboard struct {
	RecruiterName   string `json:"recruiter_name"`
	CompanyName     string `json:"company_name"`
	ActiveJobs      int    `json:"active_jobs"`
	TotalApplicants int    `json:"total_applicants"`
}

type SeekerDashboard struct {
	Name             string `json:"name"`
	ApplicationsSent int    `json:"applications_sent"`
	Accepted         int    `json:"accepted"`
}

type Dashboard struct {
	jobs     repository.JobRepository
	apps     repository.ApplicationRepository
	profiles repository.ProfileRepository
	now      func() time.Time
}

func NewDashboard(s store.DocumentStore) *Dashboard {
	return &Dashboard{
		jobs:     repository.NewDocumentJobRepository(s),
		apps:     repository.NewDocumentApplicationRepository(s),
		profiles: repository.NewDocumentProfileRepository(s),
		now:      time.Now,
	}
}

func (u *Dashboard) Recruiter(ctx context.Context, recruiterID string) (RecruiterDashboard, error) {
	recruiterID = strings.TrimSpace(recruiterID)
	if recruiterID == "" {
		return RecruiterDashboard{}, ErrInvalidInput
	}

	out := RecruiterDashboard{RecruiterName: DefaultRecruiterName}
	profile, err := u.profiles.GetRecruiter(ctx, recruiterID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return RecruiterDashboard{}, storeErr("get recruiter", err)
	default:
		if profile.RecruiterName != "" {
			out.RecruiterName = profile.RecruiterName
		}
		out.CompanyName = profile.CompanyName
	}

	jobs, err := u.jobs.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return RecruiterDashboard{}, storeErr("list recruiter jobs", err)
	}
	now := u.now().UTC()
	for _, j := range jobs {
		if j.IsActive(now) {
			out.ActiveJobs++
		}
	}

	apps, err := u.apps.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return RecruiterDashboard{}, storeErr("list recruiter applications", err)
	}
	out.TotalApplicants = len(apps)
	return out, nil
}

func (u *Dashboard) Seeker(ctx context.Context, seekerID string) (SeekerDashboard, error) {
	seekerID = strings.TrimSpace(seekerID)
	if seekerID == "" {
		return SeekerDashboard{}, ErrInvalidInput
	}

	out := SeekerDashboard{Name: DefaultSeekerTitle}
	profile, err := u.profiles.GetSeeker(ctx, seekerID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return SeekerDashboard{}, storeErr("get seeker", err)
	default:
		if profile.Name != "" {
			out.Name = profile.Name
		}
	}

	apps, err := u.apps.ListBySeeker(ctx, seekerID)
	if err != nil {
		return SeekerDashboard{}, storeErr("list seeker applications", err)
	}
	out.ApplicationsSent = len(apps)
	for _, a := range apps {
		if a.Status == application.StatusAccepted {
			out.Accepted++
		}
	}
	return out, nil
}
