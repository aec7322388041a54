// Package scheduler periodically rebuilds the cached active-jobs snapshot.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Refresher rebuilds a cached view. ok is false when another process did
// the work instead.
type Refresher interface {
	Refresh(ctx context.Context) (n int, ok bool, err error)
}

type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string
	logger    *log.Logger
}

func New(refresher Refresher, spec string, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.DefaultLogger)),
		refresher: refresher,
		spec:      spec,
		logger:    logger,
	}
}

// Start registers the refresh job and runs one refresh right away so the
// snapshot is warm before the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.logger.Printf("[scheduler] Cron started spec=%s", s.spec)

	go s.RunOnce(ctx)
	return nil
}

// Stop waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	n, ok, err := s.refresher.Refresh(ctx)
	switch {
	case err != nil:
		s.logger.Printf("[scheduler] Snapshot refresh error: %v", err)
	case !ok:
		s.logger.Println("[scheduler] Snapshot refresh skipped")
	default:
		s.logger.Printf("[scheduler] Snapshot refreshed jobs=%d", n)
	}
}
