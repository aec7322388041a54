package handler

import (
	"context"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardUsecase interface {
	Recruiter(ctx context.Context, recruiterID string) (usecase.RecruiterDashboard, error)
	Seeker(ctx context.Context, seekerID string) (usecase.SeekerDashboard, error)
}

type DashboardHandler struct {
	uc DashboardUsecase
}

func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/dashboard")
	grp.Get("/recruiter", h.Recruiter)
	grp.Get("/seeker", h.Seeker)
}

func (h *DashboardHandler) Recruiter(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Recruiter(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RecruiterDashboardResponse{
		RecruiterName:   d.RecruiterName,
		CompanyName:     d.CompanyName,
		ActiveJobs:      d.ActiveJobs,
		TotalApplicants: d.TotalApplicants,
	})
}

func (h *DashboardHandler) Seeker(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Seeker(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SeekerDashboardResponse{
		Name:             d.Name,
		ApplicationsSent: d.ApplicationsSent,
		Accepted:         d.Accepted,
	})
}
