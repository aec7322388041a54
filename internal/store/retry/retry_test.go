package retry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"jobboard/internal/store"
	"jobboard/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails the first failures reads with err.
type flakyStore struct {
	*memory.Store
	failures int32
	err      error
	calls    atomic.Int32
}

func (f *flakyStore) fail() error {
	n := f.calls.Add(1)
	if n <= f.failures {
		return f.err
	}
	return nil
}

func (f *flakyStore) GetDocument(ctx context.Context, collection, id string) (store.Document, error) {
	if err := f.fail(); err != nil {
		return store.Document{}, err
	}
	return f.Store.GetDocument(ctx, collection, id)
}

func (f *flakyStore) QueryIn(ctx context.Context, collection, idField string, ids []string) ([]store.Document, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.Store.QueryIn(ctx, collection, idField, ids)
}

func fastPolicy(attempts int) Policy {
	return Policy{Attempts: attempts, Initial: time.Millisecond, Max: 2 * time.Millisecond}
}

func newFlaky(t *testing.T, failures int32, err error) *flakyStore {
	t.Helper()
	m := memory.New(10)
	require.NoError(t, m.Put("job_posts", "j1", map[string]any{"title": "Go Dev"}))
	return &flakyStore{Store: m, failures: failures, err: err}
}

func TestRetry_RecoversFromTransientFailure(t *testing.T) {
	f := newFlaky(t, 2, errors.New("connection reset"))
	s := New(f, fastPolicy(3), nil)

	d, err := s.GetDocument(context.Background(), "job_posts", "j1")
	require.NoError(t, err)
	assert.Equal(t, "Go Dev", d.String("title"))
	assert.EqualValues(t, 3, f.calls.Load())
}

func TestRetry_ExhaustionIsUnavailable(t *testing.T) {
	cause := errors.New("connection reset")
	f := newFlaky(t, 100, cause)
	s := New(f, fastPolicy(3), nil)

	_, err := s.QueryIn(context.Background(), "job_posts", store.FieldDocumentID, []string{"j1"})
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.EqualValues(t, 3, f.calls.Load())
}

func TestRetry_PermanentErrorsAreNotRetried(t *testing.T) {
	f := newFlaky(t, 0, nil)
	s := New(f, fastPolicy(5), nil)

	_, err := s.GetDocument(context.Background(), "job_posts", "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NotErrorIs(t, err, store.ErrUnavailable)
	assert.EqualValues(t, 1, f.calls.Load())
}

func TestRetry_BatchTooLargeIsPermanent(t *testing.T) {
	f := newFlaky(t, 0, nil)
	s := New(f, fastPolicy(5), nil)

	ids := make([]string, 11)
	for i := range ids {
		ids[i] = "x"
	}
	_, err := s.QueryIn(context.Background(), "job_posts", store.FieldDocumentID, ids)
	assert.ErrorIs(t, err, store.ErrBatchTooLarge)
	assert.EqualValues(t, 1, f.calls.Load())
}

func TestRetry_ContextCanceled(t *testing.T) {
	f := newFlaky(t, 100, errors.New("timeout"))
	s := New(f, Policy{Attempts: 50, Initial: 20 * time.Millisecond, Max: 20 * time.Millisecond}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := s.GetDocument(ctx, "job_posts", "j1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, store.ErrUnavailable)
}

func TestRetry_WritesPassThrough(t *testing.T) {
	f := newFlaky(t, 0, nil)
	s := New(f, fastPolicy(3), nil)
	ctx := context.Background()

	require.NoError(t, s.CreateDocument(ctx, "saved_jobs", "s1", map[string]any{"jobId": "j1"}))
	assert.ErrorIs(t, s.CreateDocument(ctx, "saved_jobs", "s1", map[string]any{}), store.ErrAlreadyExists)
	assert.Equal(t, 10, s.MaxBatch())
}
