package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

var validate = validator.New()

// statusClientClosedRequest answers a request whose caller went away. Nobody
// reads the body; it only keeps the access log honest.
const statusClientClosedRequest = 499

func validationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		return middleware.NewAppError(fiber.StatusBadRequest, fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag()), nil, err)
	}
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}

func currentUser(c fiber.Ctx) (string, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return "", middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func mapUsecaseError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied", nil, err)
	case errors.Is(err, usecase.ErrJobExpired):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job is no longer accepting applications", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid status transition", nil, err)
	case errors.Is(err, context.Canceled):
		return middleware.NewAppError(statusClientClosedRequest, "Client closed request", nil, err)
	case errors.Is(err, usecase.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func parseSkillsQuery(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toJobResponse(j job.Listing) dto.JobResponse {
	return dto.JobResponse{
		ID:            j.ID,
		Title:         j.Title,
		Company:       j.Company,
		Location:      j.Location,
		Salary:        j.Salary,
		Description:   j.Description,
		Skills:        j.Skills.Names(),
		RecruiterID:   j.RecruiterID,
		RecruiterName: j.RecruiterName,
		PostedAt:      formatTime(j.PostedAt),
		ValidUntil:    formatTime(j.ValidUntil),
	}
}

func toMatchResponse(m matching.Result) dto.MatchResponse {
	out := dto.MatchResponse{
		MatchedCount:  m.MatchedCount,
		RequiredCount: m.RequiredCount,
		ScorePercent:  m.Percent,
		MatchedSkills: m.Matched,
		MissingSkills: m.Missing,
	}
	if out.MatchedSkills == nil {
		out.MatchedSkills = []string{}
	}
	if out.MissingSkills == nil {
		out.MissingSkills = []string{}
	}
	return out
}

func toApplicationResponse(a application.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:            a.ID,
		JobID:         a.JobID,
		SeekerID:      a.SeekerID,
		RecruiterID:   a.RecruiterID,
		Status:        string(a.Status),
		AppliedAt:     formatTime(a.AppliedAt),
		ResumeLink:    a.ResumeLink,
		SeekerName:    a.SeekerName,
		RecruiterName: a.RecruiterName,
	}
}
