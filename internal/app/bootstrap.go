package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/scheduler"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Scheduler *scheduler.Scheduler
}

// New builds the fiber app over an existing container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	var cachePinger handler.Pinger
	if c.Cache.Available() {
		cachePinger = c.Cache
	}
	auth := middleware.NewAuthMiddleware(jwt.NewHMACVerifier(c.Config.JWT.AccessSecret, c.Config.JWT.Issuer))

	routes.NewRegistry(
		handler.NewHealthHandler(c.DB, cachePinger),
		v1.Handlers{
			Jobs:         handler.NewJobsHandler(c.Jobs),
			Applications: handler.NewApplicationsHandler(c.Applications),
			SavedJobs:    handler.NewSavedJobsHandler(c.SavedJobs),
			Dashboard:    handler.NewDashboardHandler(c.Dashboard),
		},
		auth.Middleware(),
	).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects the stores, applies pending migrations and starts the
// snapshot scheduler when a cron spec is configured.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	applied, err := c.Migrate(ctx)
	if err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	c.Logger.Printf("[app] migrations applied=%d", len(applied))

	a := New(c)
	if cfg.Snapshot.Cron != "" {
		a.Scheduler = scheduler.New(c.Snapshot, cfg.Snapshot.Cron, c.Logger)
		if err := a.Scheduler.Start(ctx); err != nil {
			_ = c.Close()
			return nil, nil, err
		}
	}

	cleanup := func() error {
		if a.Scheduler != nil {
			a.Scheduler.Stop()
		}
		return c.Close()
	}
	return a, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
