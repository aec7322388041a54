package seeder

import (
	"context"
	"time"

	"jobboard/internal/repository"
	"jobboard/internal/store"
)

type JobsSeeder struct {
	Now time.Time
}

func (JobsSeeder) Name() string { return "jobs" }

func (sd JobsSeeder) Run(ctx context.Context, s store.DocumentStore) (int, error) {
	now := sd.Now.UTC()
	if sd.Now.IsZero() {
		now = time.Now().UTC()
	}

	items := []struct {
		ID          string
		Title       string
		Company     string
		Location    string
		RecruiterID string
		Recruiter   string
		Skills      []string
		Description string
		Age         time.Duration
		ValidFor    time.Duration
	}{
		{
			ID:          "demo-job-backend-go",
			Title:       "Backend Engineer (Go)",
			Company:     "Gopher Works",
			Location:    "Berlin",
			RecruiterID: "demo-recruiter-1",
			Recruiter:   "Rita Hartono",
			Skills:      []string{"Go", "PostgreSQL", "Docker", "Redis"},
			Description: "Build and maintain Go services, REST APIs, and PostgreSQL-backed systems.",
			Age:         2 * time.Hour,
			ValidFor:    30 * 24 * time.Hour,
		},
		{
			ID:          "demo-job-fullstack",
			Title:       "Fullstack Engineer (React + Go)",
			Company:     "Gopher Works",
			Location:    "Remote",
			RecruiterID: "demo-recruiter-1",
			Recruiter:   "Rita Hartono",
			Skills:      []string{"React", "TypeScript", "Go"},
			Description: "Develop web apps with React and TypeScript and backend services in Go.",
			Age:         26 * time.Hour,
			ValidFor:    14 * 24 * time.Hour,
		},
		{
			ID:          "demo-job-devops",
			Title:       "DevOps Engineer",
			Company:     "CloudKita",
			Location:    "Jakarta",
			RecruiterID: "demo-recruiter-2",
			Recruiter:   "Dimas Pratama",
			Skills:      []string{"Docker", "Kubernetes", "AWS"},
			Description: "Own CI/CD pipelines and container platforms.",
			Age:         72 * time.Hour,
			ValidFor:    7 * 24 * time.Hour,
		},
		{
			ID:          "demo-job-closed",
			Title:       "Data Analyst",
			Company:     "CloudKita",
			Location:    "Jakarta",
			RecruiterID: "demo-recruiter-2",
			Recruiter:   "Dimas Pratama",
			Skills:      []string{"SQL", "Excel"},
			Description: "Closed posting kept for history.",
			Age:         40 * 24 * time.Hour,
			ValidFor:    -24 * time.Hour,
		},
	}

	docs := make(map[string]map[string]any, len(items))
	for _, it := range items {
		docs[it.ID] = map[string]any{
			repository.FieldTitle:         it.Title,
			repository.FieldCompany:       it.Company,
			repository.FieldLocation:      it.Location,
			repository.FieldRecruiterID:   it.RecruiterID,
			repository.FieldRecruiterName: it.Recruiter,
			repository.FieldSkills:        it.Skills,
			repository.FieldDescription:   it.Description,
			repository.FieldPostedAt:      now.Add(-it.Age),
			repository.FieldValidUntil:    now.Add(it.ValidFor),
		}
	}
	return insertMissing(ctx, s, repository.CollectionJobs, docs)
}
