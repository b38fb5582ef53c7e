package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
)

// ResumesHandler serves candidate applications and their review status.
type ResumesHandler struct {
	resumes *service.ResumeService
}

// NewResumesHandler constructs the handler.
func NewResumesHandler(resumes *service.ResumeService) *ResumesHandler {
	return &ResumesHandler{resumes: resumes}
}

// Create handles POST /resumes.
func (h *ResumesHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.ResumeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	resume, err := h.resumes.Create(c.UserContext(), id.Actor(), req.Input())
	if err != nil {
		return apiError("resume", err)
	}
	return respond(c, http.StatusCreated, "Create new resume success", fiber.Map{
		"_id":       resume.ID,
		"email":     resume.Email,
		"createdAt": resume.CreatedAt,
	})
}

// List handles GET /resumes.
func (h *ResumesHandler) List(c *fiber.Ctx) error {
	resumes, err := h.resumes.List(c.UserContext())
	if err != nil {
		return apiError("resume", err)
	}
	return respond(c, http.StatusOK, "Get resumes success", dto.Resumes(resumes))
}

// ByUser lists the caller's own resumes.
func (h *ResumesHandler) ByUser(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	resumes, err := h.resumes.ByUser(c.UserContext(), id.ID)
	if err != nil {
		return apiError("resume", err)
	}
	return respond(c, http.StatusOK, "Get resumes by user success", dto.Resumes(resumes))
}

// Get handles GET /resumes/:id.
func (h *ResumesHandler) Get(c *fiber.Ctx) error {
	resume, err := h.resumes.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apiError("resume", err)
	}
	return respond(c, http.StatusOK, "Get resume success", dto.Resume(resume))
}

// UpdateStatus handles PATCH /resumes/:id.
func (h *ResumesHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.ResumeStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	resume, err := h.resumes.UpdateStatus(c.UserContext(), id.Actor(), c.Params("id"), req.Status)
	if err != nil {
		return apiError("resume", err)
	}
	return respond(c, http.StatusOK, "Update resume status success", dto.Resume(resume))
}

// Delete handles DELETE /resumes/:id.
func (h *ResumesHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.resumes.Delete(c.UserContext(), id.Actor(), c.Params("id")); err != nil {
		return apiError("resume", err)
	}
	return respond(c, http.StatusOK, "Delete resume success", fiber.Map{"deleted": 1})
}
