package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
)

// SubscribersHandler manages job-alert subscriptions.
type SubscribersHandler struct {
	subscribers *service.SubscriberService
}

// NewSubscribersHandler constructs the handler.
func NewSubscribersHandler(subscribers *service.SubscriberService) *SubscribersHandler {
	return &SubscribersHandler{subscribers: subscribers}
}

// Create handles POST /subscribers.
func (h *SubscribersHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.SubscriberRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	sub, err := h.subscribers.Create(c.UserContext(), id.Actor(), req.Input())
	if err != nil {
		return apiError("subscriber", err)
	}
	return respond(c, http.StatusCreated, "Create new subscriber success", dto.Subscriber(sub))
}

// List handles GET /subscribers.
func (h *SubscribersHandler) List(c *fiber.Ctx) error {
	subs, err := h.subscribers.List(c.UserContext())
	if err != nil {
		return apiError("subscriber", err)
	}
	return respond(c, http.StatusOK, "Get subscribers success", dto.Subscribers(subs))
}

// Get handles GET /subscribers/:id.
func (h *SubscribersHandler) Get(c *fiber.Ctx) error {
	sub, err := h.subscribers.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apiError("subscriber", err)
	}
	return respond(c, http.StatusOK, "Get subscriber success", dto.Subscriber(sub))
}

// Update handles PATCH /subscribers/:id.
func (h *SubscribersHandler) Update(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.SubscriberUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	sub, err := h.subscribers.Update(c.UserContext(), id.Actor(), c.Params("id"), req.Patch())
	if err != nil {
		return apiError("subscriber", err)
	}
	return respond(c, http.StatusOK, "Update subscriber success", dto.Subscriber(sub))
}

// Delete handles DELETE /subscribers/:id.
func (h *SubscribersHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.subscribers.Delete(c.UserContext(), id.Actor(), c.Params("id")); err != nil {
		return apiError("subscriber", err)
	}
	return respond(c, http.StatusOK, "Delete subscriber success", fiber.Map{"deleted": 1})
}
