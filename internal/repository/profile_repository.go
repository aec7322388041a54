package repository

import (
	"context"

	"jobboard/internal/domain/user"
	"jobboard/internal/store"
)

type ProfileRepository interface {
	GetSeeker(ctx context.Context, id string) (user.Seeker, error)
	GetRecruiter(ctx context.Context, id string) (user.Recruiter, error)
}

type DocumentProfileRepository struct {
	store store.Store
}

func NewDocumentProfileRepository(s store.Store) *DocumentProfileRepository {
	return &DocumentProfileRepository{store: s}
}

func (r *DocumentProfileRepository) GetSeeker(ctx context.Context, id string) (user.Seeker, error) {
	d, err := r.store.GetDocument(ctx, CollectionUsers, id)
	if err != nil {
		return user.Seeker{}, err
	}
	return DecodeSeeker(d), nil
}

func (r *DocumentProfileRepository) GetRecruiter(ctx context.Context, id string) (user.Recruiter, error) {
	d, err := r.store.GetDocument(ctx, CollectionRecruiters, id)
	if err != nil {
		return user.Recruiter{}, err
	}
	return DecodeRecruiter(d), nil
}
