package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
)

// CompaniesHandler manages employers. Reads are public.
type CompaniesHandler struct {
	companies *service.CompanyService
}

// NewCompaniesHandler constructs the handler.
func NewCompaniesHandler(companies *service.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{companies: companies}
}

// Create handles POST /companies.
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CompanyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.ValidateCreate(); err != nil {
		return err
	}
	company, err := h.companies.Create(c.UserContext(), id.Actor(), req.Input())
	if err != nil {
		return apiError("company", err)
	}
	return respond(c, http.StatusCreated, "Create new company success", dto.Company(company))
}

// List handles GET /companies.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	companies, err := h.companies.List(c.UserContext())
	if err != nil {
		return apiError("company", err)
	}
	return respond(c, http.StatusOK, "Get companies success", dto.Companies(companies))
}

// Get handles GET /companies/:id.
func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	company, err := h.companies.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apiError("company", err)
	}
	return respond(c, http.StatusOK, "Get company success", dto.Company(company))
}

// Update handles PATCH /companies/:id.
func (h *CompaniesHandler) Update(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CompanyUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	company, err := h.companies.Update(c.UserContext(), id.Actor(), c.Params("id"), req.Patch())
	if err != nil {
		return apiError("company", err)
	}
	return respond(c, http.StatusOK, "Update company success", dto.Company(company))
}

// Delete handles DELETE /companies/:id.
func (h *CompaniesHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.companies.Delete(c.UserContext(), id.Actor(), c.Params("id")); err != nil {
		return apiError("company", err)
	}
	return respond(c, http.StatusOK, "Delete company success", fiber.Map{"deleted": 1})
}
