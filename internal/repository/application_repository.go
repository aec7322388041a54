package repository

import (
	"context"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/store"
)

type ApplicationRepository interface {
	Get(ctx context.Context, id string) (application.Application, error)
	// Create stores a under its composite id and fails with
	// store.ErrAlreadyExists if the seeker already applied.
	Create(ctx context.Context, a application.Application) error
	UpdateStatus(ctx context.Context, id string, status application.Status, at time.Time) error
	ListBySeeker(ctx context.Context, seekerID string) ([]application.Application, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]application.Application, error)
}

type DocumentApplicationRepository struct {
	store store.DocumentStore
}

func NewDocumentApplicationRepository(s store.DocumentStore) *DocumentApplicationRepository {
	return &DocumentApplicationRepository{store: s}
}

func (r *DocumentApplicationRepository) Get(ctx context.Context, id string) (application.Application, error) {
	d, err := r.store.GetDocument(ctx, CollectionApplications, id)
	if err != nil {
		return application.Application{}, err
	}
	return DecodeApplication(d), nil
}

func (r *DocumentApplicationRepository) Create(ctx context.Context, a application.Application) error {
	data, err := EncodeApplication(a)
	if err != nil {
		return err
	}
	return r.store.CreateDocument(ctx, CollectionApplications, application.CompositeID(a.JobID, a.SeekerID), data)
}

func (r *DocumentApplicationRepository) UpdateStatus(ctx context.Context, id string, status application.Status, at time.Time) error {
	return r.store.UpdateFields(ctx, CollectionApplications, id, map[string]any{
		FieldStatus:   string(status),
		FieldStatusAt: store.FormatTime(at),
	})
}

func (r *DocumentApplicationRepository) ListBySeeker(ctx context.Context, seekerID string) ([]application.Application, error) {
	return r.listWhere(ctx, FieldSeekerID, seekerID)
}

func (r *DocumentApplicationRepository) ListByRecruiter(ctx context.Context, recruiterID string) ([]application.Application, error) {
	return r.listWhere(ctx, FieldRecruiterID, recruiterID)
}

func (r *DocumentApplicationRepository) listWhere(ctx context.Context, field, value string) ([]application.Application, error) {
	docs, err := r.store.QueryWhere(ctx, CollectionApplications, field, store.OpEqual, value)
	if err != nil {
		return nil, err
	}
	out := make([]application.Application, 0, len(docs))
	for _, d := range docs {
		out = append(out, DecodeApplication(d))
	}
	return out, nil
}
