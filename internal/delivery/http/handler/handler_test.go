package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"jobboard/internal/batch"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/repository"
	"jobboard/internal/store/memory"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

const testUserHeader = "X-Test-User"

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *response.Meta  `json:"meta"`
}

// newTestApp wires every handler over an in-memory store. The caller id is
// taken from the X-Test-User header in place of a verified token.
func newTestApp(t *testing.T, s *memory.Store) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	NewHealthHandler(nil, nil).RegisterRoutes(app)

	api := app.Group("/api/v1", func(c fiber.Ctx) error {
		if id := c.Get(testUserHeader); id != "" {
			c.Locals(middleware.CtxUserIDKey, id)
		}
		return c.Next()
	})

	fetcher := batch.NewFetcher(s, 4, nil)
	snapshot := usecase.NewSnapshot(repository.NewDocumentJobRepository(s), nil, time.Minute, nil)

	NewJobsHandler(usecase.NewJobs(snapshot, repository.NewDocumentJobRepository(s), repository.NewDocumentProfileRepository(s), nil)).RegisterRoutes(api)
	NewApplicationsHandler(usecase.NewApplications(s, fetcher, nil)).RegisterRoutes(api)
	NewSavedJobsHandler(usecase.NewSavedJobs(s, fetcher, nil)).RegisterRoutes(api)
	NewDashboardHandler(usecase.NewDashboard(s)).RegisterRoutes(api)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, userID, body string) (int, envelope) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func putJob(t *testing.T, s *memory.Store, id string, data map[string]any) {
	t.Helper()
	now := time.Now().UTC()
	base := map[string]any{
		repository.FieldTitle:       "Job " + id,
		repository.FieldCompany:     "Acme",
		repository.FieldLocation:    "Berlin",
		repository.FieldRecruiterID: "r1",
		repository.FieldPostedAt:    now.Add(-time.Hour),
		repository.FieldValidUntil:  now.Add(30 * 24 * time.Hour),
	}
	for k, v := range data {
		base[k] = v
	}
	require.NoError(t, s.Put(repository.CollectionJobs, id, base))
}

func putSeeker(t *testing.T, s *memory.Store, id, name string, skills ...string) {
	t.Helper()
	require.NoError(t, s.Put(repository.CollectionUsers, id, map[string]any{
		"name":                 name,
		"resume":               "https://files.example/" + id + ".pdf",
		repository.FieldSkills: skills,
	}))
}
