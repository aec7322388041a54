package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/store/memory"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedJobsHandler(t *testing.T) {
	s := memory.New(10)
	putJob(t, s, "j1", nil)
	app := newTestApp(t, s)

	status, env := doRequest(t, app, http.MethodPut, "/api/v1/me/saved-jobs/j1", "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	var saved dto.SavedJobResponse
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.Equal(t, "j1", saved.ID)
	assert.NotEmpty(t, saved.SavedAt)

	status, _ = doRequest(t, app, http.MethodPut, "/api/v1/me/saved-jobs/j1", "u1", "")
	require.Equal(t, fiber.StatusOK, status)

	status, env = doRequest(t, app, http.MethodGet, "/api/v1/me/saved-jobs", "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	var list []dto.SavedJobResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, saved.SavedID, list[0].SavedID)

	status, _ = doRequest(t, app, http.MethodPut, "/api/v1/me/saved-jobs/missing", "u1", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doRequest(t, app, http.MethodDelete, "/api/v1/me/saved-jobs/j1", "u1", "")
	require.Equal(t, fiber.StatusOK, status)

	status, env = doRequest(t, app, http.MethodGet, "/api/v1/me/saved-jobs", "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 0, env.Meta.Count)
}
