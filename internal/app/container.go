package app

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"time"

	"jobboard/internal/batch"
	"jobboard/internal/config"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/database/migration"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/repository"
	"jobboard/internal/store"
	"jobboard/internal/store/cached"
	"jobboard/internal/store/docstore"
	"jobboard/internal/store/retry"
	"jobboard/internal/usecase"
	"jobboard/migrations"
)

// Container owns the long-lived dependencies shared by the HTTP server and
// the operator CLI.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    *dbpostgres.Pool
	Cache *cache.Redis

	Store   store.DocumentStore
	Fetcher *batch.Fetcher

	Snapshot     *usecase.Snapshot
	Jobs         *usecase.Jobs
	Applications *usecase.Applications
	SavedJobs    *usecase.SavedJobs
	Dashboard    *usecase.Dashboard
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}
	c.Cache = cache.NewRedis(cfg.Redis, logger)

	var s store.DocumentStore = docstore.New(db, cfg.Store.MaxBatch)
	s = retry.New(s, retry.Policy{
		Attempts: cfg.Store.RetryAttempts,
		Initial:  cfg.Store.RetryInitial,
		Max:      cfg.Store.RetryMax,
	}, logger)

	var snapshotCache usecase.SnapshotCache
	if c.Cache.Available() {
		s = cached.New(s, c.Cache, cfg.Redis.DocumentTTL, logger).WithLiveBatches(repository.CollectionJobs)
		snapshotCache = c.Cache
	}
	c.Store = s
	c.Fetcher = batch.NewFetcher(s, cfg.Store.Parallelism, logger)

	c.Snapshot = usecase.NewSnapshot(repository.NewDocumentJobRepository(s), snapshotCache, cfg.Snapshot.TTL, logger)
	c.Jobs = usecase.NewJobs(c.Snapshot, repository.NewDocumentJobRepository(s), repository.NewDocumentProfileRepository(s), logger)
	c.Applications = usecase.NewApplications(s, c.Fetcher, logger)
	c.SavedJobs = usecase.NewSavedJobs(s, c.Fetcher, logger)
	c.Dashboard = usecase.NewDashboard(s)

	return c, nil
}

// MigrationsFS returns the configured migrations directory, or the embedded
// migrations when none is set.
func (c *Container) MigrationsFS() fs.FS {
	if p := c.Config.Store.MigrationsPath; p != "" {
		return os.DirFS(p)
	}
	return migrations.FS
}

func (c *Container) Migrate(ctx context.Context) ([]migration.Migration, error) {
	r := migration.Runner{FS: c.MigrationsFS(), Logger: c.Logger}
	return r.Run(ctx, c.DB.SQLDB())
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
