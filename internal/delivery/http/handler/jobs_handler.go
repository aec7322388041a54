package handler

import (
	"context"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
	"jobboard/internal/search"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsUsecase interface {
	Search(ctx context.Context, c search.Criteria) ([]job.Listing, error)
	Options(ctx context.Context) (usecase.FilterOptions, error)
	Recommend(ctx context.Context, seekerID string, skills []string) ([]usecase.ScoredListing, error)
	ListForRecruiter(ctx context.Context, recruiterID string) ([]usecase.PostedJob, error)
}

type JobsHandler struct {
	uc JobsUsecase
}

func NewJobsHandler(uc JobsUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/jobs")
	grp.Get("/", h.List)
	grp.Get("/filters", h.Filters)
	grp.Get("/recommendations", h.Recommendations)

	r.Get("/me/jobs", h.ListMine)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	var q dto.ListJobsQuery
	if err := c.Bind().Query(&q); err != nil {
		return validationError(err)
	}
	if err := validate.Struct(q); err != nil {
		return validationError(err)
	}

	jobs, err := h.uc.Search(c.Context(), search.Criteria{
		Text:     q.Text,
		Location: q.Location,
		Skills:   parseSkillsQuery(q.Skills),
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	return response.List(c, response.MessageOK, out, len(out), false)
}

func (h *JobsHandler) Filters(c fiber.Ctx) error {
	opts, err := h.uc.Options(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FilterOptionsResponse{
		Locations: opts.Locations,
		Skills:    opts.Skills,
	})
}

// Recommendations scores active jobs against the skills query parameter, or
// against the caller's profile skills when it is absent.
func (h *JobsHandler) Recommendations(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var q dto.RecommendationsQuery
	if err := c.Bind().Query(&q); err != nil {
		return validationError(err)
	}
	if err := validate.Struct(q); err != nil {
		return validationError(err)
	}

	items, err := h.uc.Recommend(c.Context(), userID, parseSkillsQuery(q.Skills))
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.RecommendedJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.RecommendedJobResponse{
			JobResponse: toJobResponse(it.Listing),
			Match:       toMatchResponse(it.Match),
		})
	}
	return response.List(c, response.MessageOK, out, len(out), false)
}

// ListMine lists the caller's own job posts with their Active or Closed
// state.
func (h *JobsHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	jobs, err := h.uc.ListForRecruiter(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.PostedJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.PostedJobResponse{JobResponse: toJobResponse(j.Listing), Status: j.Status})
	}
	return response.List(c, response.MessageOK, out, len(out), false)
}
