package handler

import (
	"context"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/pkg/response"
	"jobboard/internal/search"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationsUsecase interface {
	Apply(ctx context.Context, seekerID, jobID, resumeLink string) (application.Application, error)
	ListForRecruiter(ctx context.Context, recruiterID, jobID string, opts usecase.RankOptions) ([]usecase.EnrichedApplication, error)
	UpdateStatus(ctx context.Context, recruiterID, applicationID, status string) (application.Application, error)
	ListForSeeker(ctx context.Context, seekerID string) ([]usecase.AppliedJob, error)
	Get(ctx context.Context, callerID, applicationID string) (usecase.EnrichedApplication, error)
}

type ApplicationsHandler struct {
	uc ApplicationsUsecase
}

func NewApplicationsHandler(uc ApplicationsUsecase) *ApplicationsHandler {
	return &ApplicationsHandler{uc: uc}
}

func (h *ApplicationsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs/:jobId/apply", h.Apply)
	r.Get("/jobs/:jobId/applications", h.ListForJob)
	r.Get("/applications/:applicationId", h.Get)
	r.Patch("/applications/:applicationId/status", h.UpdateStatus)
	r.Get("/me/applications", h.ListMine)
}

func (h *ApplicationsHandler) Apply(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	app, err := h.uc.Apply(c.Context(), userID, c.Params("jobId"), req.ResumeLink)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toApplicationResponse(app))
}

// ListForJob ranks the applications of one of the caller's job posts.
func (h *ApplicationsHandler) ListForJob(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var q dto.ListApplicationsQuery
	if err := c.Bind().Query(&q); err != nil {
		return validationError(err)
	}
	if err := validate.Struct(q); err != nil {
		return validationError(err)
	}
	mode, err := search.ParseMode(q.Mode)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListForRecruiter(c.Context(), userID, c.Params("jobId"), usecase.RankOptions{Mode: mode, Status: q.Status})
	if err != nil {
		return mapUsecaseError(err)
	}

	partial := false
	out := make([]dto.RankedApplicationResponse, 0, len(items))
	for _, it := range items {
		partial = partial || it.Partial
		out = append(out, toRankedApplicationResponse(it))
	}
	return response.List(c, response.MessageOK, out, len(out), partial)
}

// Get shows one application with its job title and applicant contact
// details.
func (h *ApplicationsHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	item, err := h.uc.Get(c.Context(), userID, c.Params("applicationId"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toRankedApplicationResponse(item))
}

func (h *ApplicationsHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	app, err := h.uc.UpdateStatus(c.Context(), userID, c.Params("applicationId"), req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toApplicationResponse(app))
}

func (h *ApplicationsHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListForSeeker(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	partial := false
	out := make([]dto.AppliedJobResponse, 0, len(items))
	for _, it := range items {
		partial = partial || it.Partial
		out = append(out, dto.AppliedJobResponse{
			Application: toApplicationResponse(it.Application),
			Job:         toJobResponse(it.Job),
			Partial:     it.Partial,
		})
	}
	return response.List(c, response.MessageOK, out, len(out), partial)
}

func toRankedApplicationResponse(it usecase.EnrichedApplication) dto.RankedApplicationResponse {
	return dto.RankedApplicationResponse{
		ApplicationResponse: toApplicationResponse(it.Application),
		JobTitle:            it.JobTitle,
		Applicant: dto.ApplicantResponse{
			ID:     it.Seeker.ID,
			Name:   it.Seeker.Name,
			Email:  it.Seeker.Email,
			Phone:  it.Seeker.Phone,
			Resume: it.Seeker.Resume,
			Skills: it.Seeker.Skills.Names(),
		},
		Match:   toMatchResponse(it.Match),
		Partial: it.Partial,
	}
}
