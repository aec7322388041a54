// Package seeder loads demo recruiters, seekers and job posts into the
// document store. Every seeder is idempotent: existing documents are kept.
package seeder

import (
	"context"
	"errors"

	"jobboard/internal/store"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, s store.DocumentStore) (int, error)
}

// insertMissing creates each document that does not exist yet and returns
// how many were created.
func insertMissing(ctx context.Context, s store.DocumentStore, collection string, docs map[string]map[string]any) (int, error) {
	created := 0
	for id, data := range docs {
		err := s.CreateDocument(ctx, collection, id, data)
		if errors.Is(err, store.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
