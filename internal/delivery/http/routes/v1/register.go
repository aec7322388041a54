package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Jobs         *handler.JobsHandler
	Applications *handler.ApplicationsHandler
	SavedJobs    *handler.SavedJobsHandler
	Dashboard    *handler.DashboardHandler
}

// Register mounts the v1 API. Every route requires a bearer token when auth
// is set.
func Register(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil {
		return
	}

	protected := r
	if auth != nil {
		protected = r.Group("", auth)
	}

	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(protected)
	}
	if h.Applications != nil {
		h.Applications.RegisterRoutes(protected)
	}
	if h.SavedJobs != nil {
		h.SavedJobs.RegisterRoutes(protected)
	}
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(protected)
	}
}
