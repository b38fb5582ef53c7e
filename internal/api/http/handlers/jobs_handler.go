package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
)

// JobsHandler manages job postings. Reads are public.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs the handler.
func NewJobsHandler(jobs *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// Create handles POST /jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	job, err := h.jobs.Create(c.UserContext(), id.Actor(), req.Input())
	if err != nil {
		return apiError("job", err)
	}
	return respond(c, http.StatusCreated, "Create new job success", dto.Job(job))
}

// List handles GET /jobs.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	jobs, err := h.jobs.List(c.UserContext())
	if err != nil {
		return apiError("job", err)
	}
	return respond(c, http.StatusOK, "Get jobs success", dto.Jobs(jobs))
}

// Get handles GET /jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apiError("job", err)
	}
	return respond(c, http.StatusOK, "Get job success", dto.Job(job))
}

// Update handles PATCH /jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.JobUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	job, err := h.jobs.Update(c.UserContext(), id.Actor(), c.Params("id"), req.Patch())
	if err != nil {
		return apiError("job", err)
	}
	return respond(c, http.StatusOK, "Update job success", dto.Job(job))
}

// Delete handles DELETE /jobs/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.jobs.Delete(c.UserContext(), id.Actor(), c.Params("id")); err != nil {
		return apiError("job", err)
	}
	return respond(c, http.StatusOK, "Delete job success", fiber.Map{"deleted": 1})
}
