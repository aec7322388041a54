package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobboard/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	max   int
	known map[string]bool
	// failIf marks chunks that should error, keyed by their first id.
	failIf map[string]error
	delay  time.Duration

	mu       sync.Mutex
	calls    [][]string
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeStore) MaxBatch() int { return f.max }

func (f *fakeStore) QueryIn(ctx context.Context, _ string, _ string, ids []string) ([]store.Document, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, append([]string(nil), ids...))
	f.mu.Unlock()

	if len(ids) > f.max {
		return nil, store.ErrBatchTooLarge
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := f.failIf[ids[0]]; ok {
		return nil, err
	}
	out := make([]store.Document, 0, len(ids))
	for _, id := range ids {
		if f.known == nil || f.known[id] {
			out = append(out, store.Document{ID: id, Data: map[string]any{"id": id}})
		}
	}
	return out, nil
}

func makeIDs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("id%02d", i)
	}
	return out
}

func TestFetchByIDs_ChunksAndMerges(t *testing.T) {
	fs := &fakeStore{max: 10}
	f := NewFetcher(fs, 0, nil)

	res, err := f.FetchByIDs(context.Background(), "job_posts", makeIDs(23))
	require.NoError(t, err)
	assert.Len(t, res.Records, 23)
	assert.False(t, res.Partial())

	require.Len(t, fs.calls, 3)
	sizes := []int{}
	for _, c := range fs.calls {
		assert.LessOrEqual(t, len(c), 10)
		sizes = append(sizes, len(c))
	}
	assert.ElementsMatch(t, []int{10, 10, 3}, sizes)
}

func TestFetchByIDs_DedupesBeforeChunking(t *testing.T) {
	fs := &fakeStore{max: 10}
	f := NewFetcher(fs, 0, nil)

	ids := append(makeIDs(10), makeIDs(10)...)
	ids = append(ids, "", "")
	res, err := f.FetchByIDs(context.Background(), "job_posts", ids)
	require.NoError(t, err)
	assert.Len(t, res.Records, 10)
	assert.Len(t, fs.calls, 1, "ten distinct ids fit in one chunk")
}

func TestFetchByIDs_Empty(t *testing.T) {
	fs := &fakeStore{max: 10}
	res, err := NewFetcher(fs, 0, nil).FetchByIDs(context.Background(), "job_posts", nil)
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.NotNil(t, res.Records)
	assert.Empty(t, fs.calls)
}

func TestFetchByIDs_MissingIDsAreAbsent(t *testing.T) {
	fs := &fakeStore{max: 10, known: map[string]bool{"a": true, "c": true}}
	res, err := NewFetcher(fs, 0, nil).FetchByIDs(context.Background(), "job_posts", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Contains(t, res.Records, "a")
	assert.NotContains(t, res.Records, "b")
	assert.Contains(t, res.Records, "c")
	assert.False(t, res.Partial())
}

func TestFetchByIDs_PartialFailure(t *testing.T) {
	boom := errors.New("shard down")
	fs := &fakeStore{max: 10, failIf: map[string]error{"id10": boom}}
	f := NewFetcher(fs, 2, nil)

	res, err := f.FetchByIDs(context.Background(), "job_posts", makeIDs(25))
	require.NoError(t, err)
	assert.True(t, res.Partial())
	assert.Len(t, res.Records, 15)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 1, res.Failed[0].Index)
	assert.Equal(t, makeIDs(25)[10:20], res.Failed[0].IDs)
	assert.ErrorIs(t, res.Failed[0], boom)
}

func TestFetchByIDs_TotalFailure(t *testing.T) {
	boom := errors.New("store down")
	fs := &fakeStore{max: 10, failIf: map[string]error{"id00": boom, "id10": boom}}
	res, err := NewFetcher(fs, 0, nil).FetchByIDs(context.Background(), "job_posts", makeIDs(15))
	assert.ErrorIs(t, err, ErrBatchFailed)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, res.Failed, 2)
}

func TestFetchByIDs_RespectsParallelism(t *testing.T) {
	fs := &fakeStore{max: 10, delay: 10 * time.Millisecond}
	_, err := NewFetcher(fs, 2, nil).FetchByIDs(context.Background(), "job_posts", makeIDs(60))
	require.NoError(t, err)
	assert.LessOrEqual(t, fs.peak.Load(), int32(2))
	assert.Len(t, fs.calls, 6)
}

func TestFetchByIDs_Canceled(t *testing.T) {
	fs := &fakeStore{max: 10, delay: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := NewFetcher(fs, 0, nil).FetchByIDs(ctx, "job_posts", makeIDs(30))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestFetchByIDs_AlreadyCanceled(t *testing.T) {
	fs := &fakeStore{max: 10}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(fs, 0, nil).FetchByIDs(ctx, "job_posts", makeIDs(3))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fs.calls)
}

func TestChunk(t *testing.T) {
	assert.Empty(t, Chunk(nil, 10))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, Chunk([]string{"a", "b", "c"}, 2))
	assert.Len(t, Chunk(makeIDs(10), 10), 1)
	assert.Len(t, Chunk(makeIDs(11), 10), 2)
	assert.Len(t, Chunk(makeIDs(21), 0), 3)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Dedupe([]string{"b", "a", "", "b", "c", "a"}))
}
