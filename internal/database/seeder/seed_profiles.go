package seeder

import (
	"context"

	"jobboard/internal/repository"
	"jobboard/internal/store"
)

type RecruitersSeeder struct{}

func (RecruitersSeeder) Name() string { return "recruiters" }

func (RecruitersSeeder) Run(ctx context.Context, s store.DocumentStore) (int, error) {
	return insertMissing(ctx, s, repository.CollectionRecruiters, map[string]map[string]any{
		"demo-recruiter-1": {
			"email":          "hiring@gopherworks.example",
			"recruiterName":  "Rita Hartono",
			"companyName":    "Gopher Works",
			"companyWebsite": "https://gopherworks.example",
			"companyPlace":   "Berlin",
		},
		"demo-recruiter-2": {
			"email":         "talent@cloudkita.example",
			"recruiterName": "Dimas Pratama",
			"companyName":   "CloudKita",
			"companyPlace":  "Jakarta",
		},
	})
}

type SeekersSeeder struct{}

func (SeekersSeeder) Name() string { return "seekers" }

func (SeekersSeeder) Run(ctx context.Context, s store.DocumentStore) (int, error) {
	return insertMissing(ctx, s, repository.CollectionUsers, map[string]map[string]any{
		"demo-seeker-1": {
			"email":                "ana@example.com",
			"name":                 "Ana Putri",
			"countryName":          "Indonesia",
			"resume":               "https://files.example/ana.pdf",
			repository.FieldSkills: []string{"Go", "PostgreSQL", "Docker"},
		},
		"demo-seeker-2": {
			"email":                "ben@example.com",
			"name":                 "Ben Okafor",
			"countryName":          "Germany",
			"resume":               "https://files.example/ben.pdf",
			repository.FieldSkills: []string{"TypeScript", "React", "Go"},
		},
	})
}
