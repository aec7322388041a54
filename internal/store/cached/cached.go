// Package cached puts a read-through JSON cache in front of document lookups
// by id. Queries by field always go to the backing store.
package cached

import (
	"context"
	"log"
	"time"

	"jobboard/internal/store"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Store struct {
	next   store.DocumentStore
	cache  Cache
	ttl    time.Duration
	logger *log.Logger
	// live collections answer QueryIn from the backing store only, so batch
	// reads see deletions made outside this service at once.
	live map[string]bool
}

func New(next store.DocumentStore, cache Cache, ttl time.Duration, logger *log.Logger) *Store {
	return &Store{next: next, cache: cache, ttl: ttl, logger: logger}
}

// WithLiveBatches makes QueryIn skip the cache for collections. Lookups by
// single id stay cached.
func (s *Store) WithLiveBatches(collections ...string) *Store {
	if s.live == nil {
		s.live = make(map[string]bool, len(collections))
	}
	for _, c := range collections {
		s.live[c] = true
	}
	return s
}

func Key(collection, id string) string {
	return "doc:" + collection + ":" + id
}

func (s *Store) MaxBatch() int {
	return s.next.MaxBatch()
}

func (s *Store) GetDocument(ctx context.Context, collection, id string) (store.Document, error) {
	if d, ok := s.lookup(ctx, collection, id); ok {
		return d, nil
	}
	d, err := s.next.GetDocument(ctx, collection, id)
	if err != nil {
		return store.Document{}, err
	}
	s.remember(ctx, collection, d)
	return d, nil
}

func (s *Store) QueryWhere(ctx context.Context, collection, field string, op store.Operator, value any) ([]store.Document, error) {
	docs, err := s.next.QueryWhere(ctx, collection, field, op, value)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		s.remember(ctx, collection, d)
	}
	return docs, nil
}

// QueryIn serves cached ids directly and asks the backing store only for the
// rest. Field lookups and live collections bypass the cache.
func (s *Store) QueryIn(ctx context.Context, collection, idField string, ids []string) ([]store.Document, error) {
	if idField != store.FieldDocumentID || s.cache == nil {
		return s.next.QueryIn(ctx, collection, idField, ids)
	}
	if s.live[collection] {
		docs, err := s.next.QueryIn(ctx, collection, idField, ids)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			s.remember(ctx, collection, d)
		}
		return docs, nil
	}

	out := make([]store.Document, 0, len(ids))
	misses := make([]string, 0, len(ids))
	for _, id := range ids {
		if d, ok := s.lookup(ctx, collection, id); ok {
			out = append(out, d)
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return out, nil
	}

	docs, err := s.next.QueryIn(ctx, collection, idField, misses)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		s.remember(ctx, collection, d)
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) CreateDocument(ctx context.Context, collection, id string, data map[string]any) error {
	if err := s.next.CreateDocument(ctx, collection, id, data); err != nil {
		return err
	}
	s.forget(ctx, collection, id)
	return nil
}

func (s *Store) UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error {
	err := s.next.UpdateFields(ctx, collection, id, fields)
	s.forget(ctx, collection, id)
	return err
}

func (s *Store) DeleteDocument(ctx context.Context, collection, id string) error {
	err := s.next.DeleteDocument(ctx, collection, id)
	s.forget(ctx, collection, id)
	return err
}

func (s *Store) lookup(ctx context.Context, collection, id string) (store.Document, bool) {
	if s.cache == nil {
		return store.Document{}, false
	}
	var d store.Document
	hit, err := s.cache.GetJSON(ctx, Key(collection, id), &d)
	if err != nil || !hit {
		return store.Document{}, false
	}
	if d.Data == nil {
		d.Data = map[string]any{}
	}
	return d, true
}

func (s *Store) remember(ctx context.Context, collection string, d store.Document) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, Key(collection, d.ID), d, s.ttl); err != nil && s.logger != nil {
		s.logger.Printf("[Cache] set failed key=%s err=%v", Key(collection, d.ID), err)
	}
}

func (s *Store) forget(ctx context.Context, collection, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, Key(collection, id)); err != nil && s.logger != nil {
		s.logger.Printf("[Cache] delete failed key=%s err=%v", Key(collection, id), err)
	}
}
