package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	domjob "jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
	ucjob "jobboard/internal/usecase/job"
)

type JobsHandler struct {
	uc ucjob.Usecase
}

type createJobRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Salary       string   `json:"salary"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Category     string   `json:"category"`
}

type updateJobRequest struct {
	Title        *string  `json:"title"`
	Company      *string  `json:"company"`
	Location     *string  `json:"location"`
	Type         *string  `json:"type"`
	Salary       *string  `json:"salary"`
	Description  *string  `json:"description"`
	Requirements []string `json:"requirements"`
	Category     *string  `json:"category"`
}

func NewJobsHandler(uc ucjob.Usecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

// RegisterRoutes leaves the read endpoints public; mutations carry the auth
// and employer gates as route-level middleware.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, requireAuth, requireEmployer fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", requireAuth, requireEmployer, h.Create)
	r.Put("/:id", requireAuth, requireEmployer, h.Update)
	r.Delete("/:id", requireAuth, requireEmployer, h.Delete)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), domjob.ListFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		Category: c.Query("category"),
		Type:     c.Query("type"),
	})
	if err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusOK, "Jobs fetched successfully", dto.NewJobDetailResponses(items))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := parseJobID(c.Params("id"))
	if err != nil {
		return err
	}

	l, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job fetched successfully", dto.NewJobDetailResponse(l))
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	usr, ok := middleware.UserFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	j, err := h.uc.Create(c.Context(), usr, ucjob.CreateInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Type:         req.Type,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		Category:     req.Category,
	})
	if err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Job posted successfully", dto.NewJobResponse(j))
}

func (h *JobsHandler) Update(c fiber.Ctx) error {
	usr, ok := middleware.UserFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	id, err := parseJobID(c.Params("id"))
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	j, err := h.uc.Update(c.Context(), usr, id, ucjob.UpdateInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Type:         req.Type,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		Category:     req.Category,
	})
	if err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job updated successfully", dto.NewJobResponse(j))
}

func (h *JobsHandler) Delete(c fiber.Ctx) error {
	usr, ok := middleware.UserFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	id, err := parseJobID(c.Params("id"))
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), usr, id); err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job deleted successfully", nil)
}

// parseJobID rejects malformed ids with 400 before any storage lookup, so a
// garbage id never reads as "not found".
func parseJobID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid job ID", err)
	}
	return id, nil
}

func mapJobError(err error) error {
	switch {
	case errors.Is(err, ucjob.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "All required fields must be provided", err)
	case errors.Is(err, ucjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", err)
	case errors.Is(err, ucjob.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "You are not authorized to modify this job", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
