package usecase

import (
	"context"
	"log"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/repository"
)

const (
	SnapshotCacheKey = "jobs:active:v1"
	snapshotLockKey  = SnapshotCacheKey + ":lock"
	snapshotLockTTL  = 30 * time.Second
)

type snapshotPayload struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Jobs        []job.Listing `json:"jobs"`
}

// Snapshot serves the active listings from a cached copy and falls back to
// the repository on a miss. Listings that expired since the copy was taken
// are dropped on read.
type Snapshot struct {
	jobs     repository.JobRepository
	cache    SnapshotCache
	ttl      time.Duration
	lockWait time.Duration
	now      func() time.Time
	logger   *log.Logger
}

func NewSnapshot(jobs repository.JobRepository, cache SnapshotCache, ttl time.Duration, logger *log.Logger) *Snapshot {
	return &Snapshot{
		jobs:     jobs,
		cache:    cache,
		ttl:      ttl,
		lockWait: 300 * time.Millisecond,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *Snapshot) ListActive(ctx context.Context, now time.Time) ([]job.Listing, error) {
	if jobs, ok := s.cached(ctx, now); ok {
		return jobs, nil
	}

	lockAcquired := false
	if s.cache != nil {
		ok, err := s.cache.SetIfNotExists(ctx, snapshotLockKey, "1", snapshotLockTTL)
		if err == nil && ok {
			lockAcquired = true
		} else if err == nil && !ok {
			jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.lockWait + jitter):
			}
			if jobs, ok := s.cached(ctx, now); ok {
				return jobs, nil
			}
			s.logf("[Snapshot] Lock wait fallback: %s", snapshotLockKey)
		}
	}

	jobs, err := s.jobs.ListActive(ctx, now)
	if err != nil {
		if lockAcquired {
			_ = s.cache.Delete(ctx, snapshotLockKey)
		}
		return nil, err
	}
	if lockAcquired {
		s.store(ctx, jobs)
		_ = s.cache.Delete(ctx, snapshotLockKey)
	}
	return jobs, nil
}

// Refresh rebuilds the cached copy. It reports false without error when
// another process holds the refresh lock.
func (s *Snapshot) Refresh(ctx context.Context) (int, bool, error) {
	if s.cache == nil {
		return 0, false, nil
	}
	ok, err := s.cache.SetIfNotExists(ctx, snapshotLockKey, "1", snapshotLockTTL)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		s.logf("[Snapshot] refresh skipped, lock held: %s", snapshotLockKey)
		return 0, false, nil
	}
	defer func() { _ = s.cache.Delete(ctx, snapshotLockKey) }()

	jobs, err := s.jobs.ListActive(ctx, s.now().UTC())
	if err != nil {
		return 0, false, err
	}
	s.store(ctx, jobs)
	return len(jobs), true, nil
}

func (s *Snapshot) cached(ctx context.Context, now time.Time) ([]job.Listing, bool) {
	if s.cache == nil {
		return nil, false
	}
	var p snapshotPayload
	hit, err := s.cache.GetJSON(ctx, SnapshotCacheKey, &p)
	if err != nil || !hit {
		s.logf("[Snapshot] Cache MISS: %s", SnapshotCacheKey)
		return nil, false
	}
	s.logf("[Snapshot] Cache HIT: %s generated_at=%s", SnapshotCacheKey, p.GeneratedAt.Format(time.RFC3339))

	out := make([]job.Listing, 0, len(p.Jobs))
	for _, j := range p.Jobs {
		if j.IsActive(now) {
			out = append(out, j)
		}
	}
	return out, true
}

func (s *Snapshot) store(ctx context.Context, jobs []job.Listing) {
	p := snapshotPayload{GeneratedAt: s.now().UTC(), Jobs: jobs}
	if err := s.cache.SetJSON(ctx, SnapshotCacheKey, p, s.ttl); err != nil {
		s.logf("[Snapshot] Cache SET failed: %v", err)
		return
	}
	s.logf("[Snapshot] Cache SET: %s jobs=%d", SnapshotCacheKey, len(jobs))
}

func (s *Snapshot) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
