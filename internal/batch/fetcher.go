// Package batch resolves large id sets against a store that caps the size of
// a single id-set query.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobboard/internal/store"

	"golang.org/x/sync/errgroup"
)

// ErrBatchFailed is returned when every chunk of a fetch failed.
var ErrBatchFailed = errors.New("batch fetch failed")

type Querier interface {
	QueryIn(ctx context.Context, collection, idField string, ids []string) ([]store.Document, error)
	MaxBatch() int
}

// ChunkError records one chunk the store could not serve.
type ChunkError struct {
	Index int
	IDs   []string
	Err   error
}

func (e ChunkError) Error() string {
	return fmt.Sprintf("chunk %d (%d ids): %v", e.Index, len(e.IDs), e.Err)
}

func (e ChunkError) Unwrap() error {
	return e.Err
}

type Result struct {
	// Records holds every document found, keyed by document id. Ids the store
	// does not know are absent.
	Records map[string]store.Document
	// Failed lists the chunks that errored, in chunk order.
	Failed []ChunkError
}

// Partial reports whether some ids could not be looked up.
func (r Result) Partial() bool {
	return len(r.Failed) > 0
}

type Fetcher struct {
	store       Querier
	parallelism int
	logger      *log.Logger
}

// NewFetcher returns a Fetcher that runs at most parallelism chunk queries at
// once. parallelism <= 0 means one goroutine per chunk.
func NewFetcher(q Querier, parallelism int, logger *log.Logger) *Fetcher {
	return &Fetcher{store: q, parallelism: parallelism, logger: logger}
}

// FetchByIDs looks up ids in collection by document id.
func (f *Fetcher) FetchByIDs(ctx context.Context, collection string, ids []string) (Result, error) {
	return f.FetchByField(ctx, collection, store.FieldDocumentID, ids)
}

// FetchByField looks up documents whose field equals one of values. Duplicate
// and empty values are dropped before chunking.
func (f *Fetcher) FetchByField(ctx context.Context, collection, field string, values []string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	uniq := Dedupe(values)
	res := Result{Records: make(map[string]store.Document, len(uniq))}
	if len(uniq) == 0 {
		return res, nil
	}

	chunks := Chunk(uniq, f.store.MaxBatch())
	found := make([][]store.Document, len(chunks))
	errs := make([]error, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	if f.parallelism > 0 {
		g.SetLimit(f.parallelism)
	}
	for i, c := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs, err := f.store.QueryIn(gctx, collection, field, c)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				errs[i] = err
				return nil
			}
			found[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	for i := range chunks {
		if errs[i] != nil {
			res.Failed = append(res.Failed, ChunkError{Index: i, IDs: chunks[i], Err: errs[i]})
			if f.logger != nil {
				f.logger.Printf("[Batch] chunk failed collection=%s chunk=%d size=%d err=%v", collection, i, len(chunks[i]), errs[i])
			}
			continue
		}
		for _, d := range found[i] {
			res.Records[d.ID] = d
		}
	}

	if len(res.Failed) == len(chunks) {
		return res, fmt.Errorf("%w: collection=%s chunks=%d: %w", ErrBatchFailed, collection, len(chunks), res.Failed[0].Err)
	}
	return res, nil
}

// Dedupe drops empty and repeated ids, keeping first occurrences in order.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Chunk splits ids into consecutive slices of at most size elements.
func Chunk(ids []string, size int) [][]string {
	if size <= 0 {
		size = store.DefaultMaxBatch
	}
	out := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}
