package handler

import (
	"context"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SavedJobsUsecase interface {
	GetSavedJobsWithMeta(ctx context.Context, userID string) ([]usecase.EnrichedSavedJob, error)
	Save(ctx context.Context, userID, jobID string) (usecase.EnrichedSavedJob, error)
	Unsave(ctx context.Context, userID, jobID string) error
}

type SavedJobsHandler struct {
	uc SavedJobsUsecase
}

func NewSavedJobsHandler(uc SavedJobsUsecase) *SavedJobsHandler {
	return &SavedJobsHandler{uc: uc}
}

func (h *SavedJobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/saved-jobs")
	grp.Get("/", h.List)
	grp.Put("/:jobId", h.Save)
	grp.Delete("/:jobId", h.Unsave)
}

func (h *SavedJobsHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.GetSavedJobsWithMeta(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	partial := false
	out := make([]dto.SavedJobResponse, 0, len(items))
	for _, it := range items {
		partial = partial || it.Partial
		out = append(out, toSavedJobResponse(it))
	}
	return response.List(c, response.MessageOK, out, len(out), partial)
}

// Save is idempotent: saving an already saved job returns the existing
// bookmark.
func (h *SavedJobsHandler) Save(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	saved, err := h.uc.Save(c.Context(), userID, c.Params("jobId"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toSavedJobResponse(saved))
}

func (h *SavedJobsHandler) Unsave(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.uc.Unsave(c.Context(), userID, c.Params("jobId")); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func toSavedJobResponse(it usecase.EnrichedSavedJob) dto.SavedJobResponse {
	return dto.SavedJobResponse{
		JobResponse: toJobResponse(it.Listing),
		SavedID:     it.SavedID,
		SavedAt:     formatTime(it.SavedAt),
		Partial:     it.Partial,
	}
}
