// Package retry wraps a store.DocumentStore so transient read failures are
// retried with bounded exponential backoff. Writes are passed through once.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobboard/internal/store"

	"github.com/cenkalti/backoff/v4"
)

type Policy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Initial: 100 * time.Millisecond, Max: 2 * time.Second}
}

type Store struct {
	next   store.DocumentStore
	policy Policy
	logger *log.Logger
}

func New(next store.DocumentStore, policy Policy, logger *log.Logger) *Store {
	d := DefaultPolicy()
	if policy.Attempts <= 0 {
		policy.Attempts = d.Attempts
	}
	if policy.Initial <= 0 {
		policy.Initial = d.Initial
	}
	if policy.Max <= 0 {
		policy.Max = d.Max
	}
	return &Store{next: next, policy: policy, logger: logger}
}

func (s *Store) MaxBatch() int {
	return s.next.MaxBatch()
}

func (s *Store) GetDocument(ctx context.Context, collection, id string) (store.Document, error) {
	var out store.Document
	err := s.do(ctx, "get "+collection, func() error {
		d, err := s.next.GetDocument(ctx, collection, id)
		if err != nil {
			return err
		}
		out = d
		return nil
	})
	return out, err
}

func (s *Store) QueryWhere(ctx context.Context, collection, field string, op store.Operator, value any) ([]store.Document, error) {
	var out []store.Document
	err := s.do(ctx, "where "+collection, func() error {
		docs, err := s.next.QueryWhere(ctx, collection, field, op, value)
		if err != nil {
			return err
		}
		out = docs
		return nil
	})
	return out, err
}

func (s *Store) QueryIn(ctx context.Context, collection, idField string, ids []string) ([]store.Document, error) {
	var out []store.Document
	err := s.do(ctx, "in "+collection, func() error {
		docs, err := s.next.QueryIn(ctx, collection, idField, ids)
		if err != nil {
			return err
		}
		out = docs
		return nil
	})
	return out, err
}

func (s *Store) CreateDocument(ctx context.Context, collection, id string, data map[string]any) error {
	return s.next.CreateDocument(ctx, collection, id, data)
}

func (s *Store) UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error {
	return s.next.UpdateFields(ctx, collection, id, fields)
}

func (s *Store) DeleteDocument(ctx context.Context, collection, id string) error {
	return s.next.DeleteDocument(ctx, collection, id)
}

func (s *Store) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.policy.Initial
	eb.MaxInterval = s.policy.Max
	eb.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(s.policy.Attempts-1)), ctx)
}

// do runs op until it succeeds, fails permanently, or the policy is
// exhausted. Exhaustion is reported as store.ErrUnavailable.
func (s *Store) do(ctx context.Context, what string, op func() error) error {
	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		err := op()
		if err != nil && store.IsPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}, s.newBackOff(ctx), func(err error, wait time.Duration) {
		if s.logger != nil {
			s.logger.Printf("[Store] retrying op=%q attempt=%d wait=%s err=%v", what, attempt, wait, err)
		}
	})
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if store.IsPermanent(err) {
		return err
	}
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	if s.logger != nil {
		s.logger.Printf("[Store] giving up op=%q attempts=%d err=%v", what, attempt, err)
	}
	return fmt.Errorf("%w: %s: %w", store.ErrUnavailable, what, err)
}
