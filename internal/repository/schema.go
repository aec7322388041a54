package repository

import (
	"fmt"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/savedjob"
	"jobboard/internal/domain/skill"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/normalize"
	"jobboard/internal/store"

	"github.com/go-playground/validator/v10"
)

const (
	CollectionJobs         = "job_posts"
	CollectionApplications = "applications"
	CollectionUsers        = "users"
	CollectionRecruiters   = "recruiters"
	CollectionSavedJobs    = "saved_jobs"
)

// Field names as stored in documents.
const (
	FieldJobID         = "jobID"
	FieldSeekerID      = "seekerID"
	FieldRecruiterID   = "recruiterID"
	FieldRecruiterName = "recruiterName"
	FieldSeekerName    = "seekerName"
	FieldStatus        = "status"
	FieldAppliedAt     = "appliedAt"
	FieldResumeLink    = "resumeLink"
	FieldStatusAt      = "statusUpdatedAt"

	FieldTitle       = "title"
	FieldCompany     = "company"
	FieldLocation    = "location"
	FieldSalary      = "salary"
	FieldSkills      = "skills"
	FieldDescription = "description"
	FieldPostedAt    = "timestamp"
	FieldValidUntil  = "validUntil"

	FieldSavedUserID = "userId"
	FieldSavedJobID  = "jobId"
	FieldSavedAt     = "savedAt"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeListing maps a job_posts document onto a Listing. Location is
// normalized; a skills field that is not a list yields no skills.
func DecodeListing(d store.Document) job.Listing {
	l := job.Listing{
		ID:            d.ID,
		Title:         d.String(FieldTitle),
		Company:       d.String(FieldCompany),
		Location:      normalize.String(d.String(FieldLocation)),
		Salary:        d.String(FieldSalary),
		RecruiterID:   d.String(FieldRecruiterID),
		RecruiterName: d.String(FieldRecruiterName),
		Description:   d.String(FieldDescription),
	}
	v, _ := d.Get(FieldSkills)
	l.Skills = skill.FromAny(v)
	l.PostedAt, _ = d.Time(FieldPostedAt)
	l.ValidUntil, _ = d.Time(FieldValidUntil)
	return l
}

// DecodeApplication maps an applications document. An unknown status is kept
// verbatim so it can be reported, not silently rewritten.
func DecodeApplication(d store.Document) application.Application {
	a := application.Application{
		ID:            d.ID,
		JobID:         d.String(FieldJobID),
		SeekerID:      d.String(FieldSeekerID),
		RecruiterID:   d.String(FieldRecruiterID),
		ResumeLink:    d.String(FieldResumeLink),
		SeekerName:    d.String(FieldSeekerName),
		RecruiterName: d.String(FieldRecruiterName),
	}
	raw := d.String(FieldStatus)
	if st, err := application.ParseStatus(raw); err == nil {
		a.Status = st
	} else {
		a.Status = application.Status(raw)
	}
	a.AppliedAt, _ = d.Time(FieldAppliedAt)
	return a
}

func DecodeSavedJob(d store.Document) savedjob.Ref {
	r := savedjob.Ref{
		ID:     d.ID,
		UserID: d.String(FieldSavedUserID),
		JobID:  d.String(FieldSavedJobID),
	}
	r.SavedAt, _ = d.Time(FieldSavedAt)
	return r
}

func DecodeSeeker(d store.Document) user.Seeker {
	s := user.Seeker{
		ID:          d.ID,
		Email:       d.String("email"),
		Name:        d.String("name"),
		Phone:       d.String("phone"),
		CountryName: d.String("countryName"),
		Resume:      d.String("resume"),
	}
	v, _ := d.Get(FieldSkills)
	s.Skills = skill.FromAny(v)
	return s
}

func DecodeRecruiter(d store.Document) user.Recruiter {
	logo := d.String("companyLogo")
	if logo == "" {
		logo = d.String("logo")
	}
	return user.Recruiter{
		ID:             d.ID,
		Email:          d.String("email"),
		RecruiterName:  d.String(FieldRecruiterName),
		CompanyName:    d.String("companyName"),
		CompanyWebsite: d.String("companyWebsite"),
		CompanyPlace:   d.String("companyPlace"),
		Phone:          d.String("phone"),
		CompanyLogo:    logo,
	}
}

type applicationRecord struct {
	JobID         string `validate:"required"`
	SeekerID      string `validate:"required"`
	RecruiterID   string `validate:"required"`
	Status        string `validate:"required,oneof=Pending Reviewed Accepted Rejected"`
	AppliedAt     time.Time
	ResumeLink    string `validate:"omitempty,max=2048"`
	SeekerName    string
	RecruiterName string
}

// EncodeApplication validates a and returns the document body to store.
func EncodeApplication(a application.Application) (map[string]any, error) {
	rec := applicationRecord{
		JobID:         a.JobID,
		SeekerID:      a.SeekerID,
		RecruiterID:   a.RecruiterID,
		Status:        string(a.Status),
		AppliedAt:     a.AppliedAt,
		ResumeLink:    a.ResumeLink,
		SeekerName:    a.SeekerName,
		RecruiterName: a.RecruiterName,
	}
	if err := validate.Struct(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return map[string]any{
		FieldJobID:         rec.JobID,
		FieldSeekerID:      rec.SeekerID,
		FieldRecruiterID:   rec.RecruiterID,
		FieldStatus:        rec.Status,
		FieldAppliedAt:     store.FormatTime(rec.AppliedAt),
		FieldResumeLink:    rec.ResumeLink,
		FieldSeekerName:    rec.SeekerName,
		FieldRecruiterName: rec.RecruiterName,
	}, nil
}

type savedJobRecord struct {
	UserID string `validate:"required"`
	JobID  string `validate:"required"`
}

func EncodeSavedJob(r savedjob.Ref) (map[string]any, error) {
	rec := savedJobRecord{UserID: r.UserID, JobID: r.JobID}
	if err := validate.Struct(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return map[string]any{
		FieldSavedUserID: rec.UserID,
		FieldSavedJobID:  rec.JobID,
		FieldSavedAt:     store.FormatTime(r.SavedAt),
	}, nil
}
