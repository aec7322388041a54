package repository

import (
	"context"
	"errors"

	"jobboard/internal/domain/savedjob"
	"jobboard/internal/store"
)

type SavedJobRepository interface {
	ListByUser(ctx context.Context, userID string) ([]savedjob.Ref, error)
	Find(ctx context.Context, userID, jobID string) (savedjob.Ref, bool, error)
	FindAll(ctx context.Context, userID, jobID string) ([]savedjob.Ref, error)
	Create(ctx context.Context, ref savedjob.Ref) (savedjob.Ref, error)
	Delete(ctx context.Context, id string) error
}

type DocumentSavedJobRepository struct {
	store store.DocumentStore
}

func NewDocumentSavedJobRepository(s store.DocumentStore) *DocumentSavedJobRepository {
	return &DocumentSavedJobRepository{store: s}
}

func (r *DocumentSavedJobRepository) ListByUser(ctx context.Context, userID string) ([]savedjob.Ref, error) {
	docs, err := r.store.QueryWhere(ctx, CollectionSavedJobs, FieldSavedUserID, store.OpEqual, userID)
	if err != nil {
		return nil, err
	}
	out := make([]savedjob.Ref, 0, len(docs))
	for _, d := range docs {
		out = append(out, DecodeSavedJob(d))
	}
	return out, nil
}

// Find returns userID's bookmark of jobID. The keyed document wins over
// bookmarks written under other ids by older clients.
func (r *DocumentSavedJobRepository) Find(ctx context.Context, userID, jobID string) (savedjob.Ref, bool, error) {
	refs, err := r.FindAll(ctx, userID, jobID)
	if err != nil || len(refs) == 0 {
		return savedjob.Ref{}, false, err
	}
	for _, ref := range refs {
		if ref.ID == savedjob.RefID(userID, jobID) {
			return ref, true, nil
		}
	}
	return refs[0], true, nil
}

func (r *DocumentSavedJobRepository) FindAll(ctx context.Context, userID, jobID string) ([]savedjob.Ref, error) {
	refs, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := refs[:0]
	for _, ref := range refs {
		if ref.JobID == jobID {
			out = append(out, ref)
		}
	}
	return out, nil
}

// Create stores ref under savedjob.RefID. A concurrent save of the same pair
// fails with store.ErrAlreadyExists.
func (r *DocumentSavedJobRepository) Create(ctx context.Context, ref savedjob.Ref) (savedjob.Ref, error) {
	data, err := EncodeSavedJob(ref)
	if err != nil {
		return savedjob.Ref{}, err
	}
	ref.ID = savedjob.RefID(ref.UserID, ref.JobID)
	if err := r.store.CreateDocument(ctx, CollectionSavedJobs, ref.ID, data); err != nil {
		return savedjob.Ref{}, err
	}
	return ref, nil
}

// Delete is idempotent: removing an already removed bookmark succeeds.
func (r *DocumentSavedJobRepository) Delete(ctx context.Context, id string) error {
	err := r.store.DeleteDocument(ctx, CollectionSavedJobs, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
