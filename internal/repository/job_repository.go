package repository

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/store"
)

var ErrInvalidRecord = errors.New("invalid record")

type JobRepository interface {
	Get(ctx context.Context, id string) (job.Listing, error)
	ListActive(ctx context.Context, now time.Time) ([]job.Listing, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]job.Listing, error)
}

type DocumentJobRepository struct {
	store store.Store
}

func NewDocumentJobRepository(s store.Store) *DocumentJobRepository {
	return &DocumentJobRepository{store: s}
}

func (r *DocumentJobRepository) Get(ctx context.Context, id string) (job.Listing, error) {
	d, err := r.store.GetDocument(ctx, CollectionJobs, id)
	if err != nil {
		return job.Listing{}, err
	}
	return DecodeListing(d), nil
}

// ListActive returns listings whose validUntil is after now.
func (r *DocumentJobRepository) ListActive(ctx context.Context, now time.Time) ([]job.Listing, error) {
	docs, err := r.store.QueryWhere(ctx, CollectionJobs, FieldValidUntil, store.OpGreater, now.UTC())
	if err != nil {
		return nil, err
	}
	return decodeListings(docs), nil
}

func (r *DocumentJobRepository) ListByRecruiter(ctx context.Context, recruiterID string) ([]job.Listing, error) {
	docs, err := r.store.QueryWhere(ctx, CollectionJobs, FieldRecruiterID, store.OpEqual, recruiterID)
	if err != nil {
		return nil, err
	}
	return decodeListings(docs), nil
}

func decodeListings(docs []store.Document) []job.Listing {
	out := make([]job.Listing, 0, len(docs))
	for _, d := range docs {
		out = append(out, DecodeListing(d))
	}
	return out
}
