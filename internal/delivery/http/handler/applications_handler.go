package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	ucapp "jobboard/internal/usecase/application"
)

type ApplicationsHandler struct {
	uc ucapp.Usecase
}

type applyRequest struct {
	CoverLetter string `json:"coverLetter"`
	Resume      string `json:"resume"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func NewApplicationsHandler(uc ucapp.Usecase) *ApplicationsHandler {
	return &ApplicationsHandler{uc: uc}
}

// RegisterRoutes takes the gates as route-level middleware; every endpoint
// here requires an authenticated identity plus a role check.
func (h *ApplicationsHandler) RegisterRoutes(r fiber.Router, requireAuth, requireJobseeker, requireEmployer fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/my", requireAuth, requireJobseeker, h.MyApplications)
	r.Get("/job/:jobId", requireAuth, requireEmployer, h.ApplicantsForJob)
	r.Post("/:jobId", requireAuth, requireJobseeker, h.Apply)
	r.Patch("/:id/status", requireAuth, requireEmployer, h.UpdateStatus)
}

func (h *ApplicationsHandler) Apply(c fiber.Ctx) error {
	usr, ok := middleware.UserFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	jobID, err := parseJobID(c.Params("jobId"))
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	a, err := h.uc.Apply(c.Context(), usr, jobID, ucapp.ApplyInput{
		CoverLetter: req.CoverLetter,
		Resume:      req.Resume,
	})
	if err != nil {
		return mapApplicationError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Application submitted successfully", dto.NewApplicationResponse(a))
}

func (h *ApplicationsHandler) MyApplications(c fiber.Ctx) error {
	usr, ok := middleware.UserFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	apps, jobs, err := h.uc.MyApplications(c.Context(), usr.ID)
	if err != nil {
		return mapApplicationError(err)
	}

	return response.Success(c, fiber.StatusOK, "Your applications fetched successfully", dto.NewMyApplicationResponses(apps, jobs))
}

func (h *ApplicationsHandler) ApplicantsForJob(c fiber.Ctx) error {
	usr, ok := middleware.UserFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	jobID, err := parseJobID(c.Params("jobId"))
	if err != nil {
		return err
	}

	apps, applicants, err := h.uc.ApplicantsForJob(c.Context(), usr, jobID)
	if err != nil {
		return mapApplicationError(err)
	}

	return response.Success(c, fiber.StatusOK, "Applicants fetched successfully", dto.NewJobApplicationResponses(apps, applicants))
}

func (h *ApplicationsHandler) UpdateStatus(c fiber.Ctx) error {
	usr, ok := middleware.UserFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application ID", err)
	}

	var req updateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	a, err := h.uc.UpdateStatus(c.Context(), usr, id, req.Status)
	if err != nil {
		return mapApplicationError(err)
	}

	return response.Success(c, fiber.StatusOK, "Application status updated successfully", dto.NewApplicationResponse(a))
}

func mapApplicationError(err error) error {
	switch {
	case errors.Is(err, ucapp.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application status", err)
	case errors.Is(err, ucapp.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", err)
	case errors.Is(err, ucapp.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", err)
	case errors.Is(err, ucapp.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied to this job", err)
	case errors.Is(err, ucapp.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "You are not the owner of this job", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
