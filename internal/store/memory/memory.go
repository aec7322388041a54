// Package memory is an in-process store.DocumentStore for tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"jobboard/internal/store"
)

type Store struct {
	mu       sync.RWMutex
	data     map[string]map[string]map[string]any
	maxBatch int
}

func New(maxBatch int) *Store {
	if maxBatch <= 0 {
		maxBatch = store.DefaultMaxBatch
	}
	return &Store{data: map[string]map[string]map[string]any{}, maxBatch: maxBatch}
}

func (s *Store) MaxBatch() int {
	return s.maxBatch
}

// Put stores data under id, replacing any previous document.
func (s *Store) Put(collection, id string, data map[string]any) error {
	c, err := store.Canonical(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll(collection)[id] = c
	return nil
}

func (s *Store) GetDocument(ctx context.Context, collection, id string) (store.Document, error) {
	if err := ctx.Err(); err != nil {
		return store.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.data[collection][id]
	if !ok {
		return store.Document{}, store.ErrNotFound
	}
	return s.doc(id, d), nil
}

func (s *Store) QueryWhere(ctx context.Context, collection, field string, op store.Operator, value any) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !op.Valid() {
		return nil, fmt.Errorf("%w: operator %q", store.ErrInvalidQuery, op)
	}
	operand, err := store.CanonicalValue(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidQuery, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Document, 0)
	for id, d := range s.data[collection] {
		fv, ok := d[field]
		if !ok {
			continue
		}
		if store.Match(fv, op, operand) {
			out = append(out, s.doc(id, d))
		}
	}
	sortByID(out)
	return out, nil
}

func (s *Store) QueryIn(ctx context.Context, collection, idField string, ids []string) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ids) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d > %d", store.ErrBatchTooLarge, len(ids), s.maxBatch)
	}

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Document, 0, len(ids))
	for id, d := range s.data[collection] {
		key := id
		if idField != store.FieldDocumentID {
			v, ok := d[idField].(string)
			if !ok {
				continue
			}
			key = v
		}
		if _, ok := want[key]; ok {
			out = append(out, s.doc(id, d))
		}
	}
	sortByID(out)
	return out, nil
}

func (s *Store) CreateDocument(ctx context.Context, collection, id string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := store.Canonical(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.coll(collection)
	if _, ok := coll[id]; ok {
		return store.ErrAlreadyExists
	}
	coll[id] = c
	return nil
}

func (s *Store) UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := store.Canonical(fields)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.data[collection][id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range c {
		d[k] = v
	}
	return nil
}

func (s *Store) DeleteDocument(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[collection][id]; !ok {
		return store.ErrNotFound
	}
	delete(s.data[collection], id)
	return nil
}

func (s *Store) coll(name string) map[string]map[string]any {
	c, ok := s.data[name]
	if !ok {
		c = map[string]map[string]any{}
		s.data[name] = c
	}
	return c
}

// doc hands out a copy so callers cannot mutate stored state.
func (s *Store) doc(id string, d map[string]any) store.Document {
	c, _ := store.Canonical(d)
	return store.Document{ID: id, Data: c}
}

func sortByID(docs []store.Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
}
