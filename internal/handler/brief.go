package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sonicbrief/api/internal/middleware"
	"github.com/sonicbrief/api/internal/model"
	"github.com/sonicbrief/api/internal/service"
	"github.com/sonicbrief/api/internal/store"
	"github.com/sonicbrief/api/pkg/response"
)

type BriefHandler struct {
	service   *service.BriefService
	validator *validator.Validate
}

func NewBriefHandler(svc *service.BriefService, v *validator.Validate) *BriefHandler {
	return &BriefHandler{
		service:   svc,
		validator: v,
	}
}

// Create handles POST /api/briefs
func (h *BriefHandler) Create(c *fiber.Ctx) error {
	var req model.CreateBriefRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.CreateBrief(c.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		if err == service.ErrMissingSubject {
			return response.ValidationError(c, err.Error(), nil)
		}
		return response.ServiceError(c, err.Error())
	}

	return response.Accepted(c, result)
}

// Get handles GET /api/briefs/:briefId
func (h *BriefHandler) Get(c *fiber.Ctx) error {
	briefID := c.Params("briefId")
	if briefID == "" {
		return response.ValidationError(c, "Brief ID is required", nil)
	}

	result, err := h.service.GetBrief(c.Context(), briefID)
	if err != nil {
		if err == store.ErrNotFound {
			return response.NotFound(c, "Brief not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

// Renders handles GET /api/briefs/:briefId/renders
func (h *BriefHandler) Renders(c *fiber.Ctx) error {
	briefID := c.Params("briefId")
	if briefID == "" {
		return response.ValidationError(c, "Brief ID is required", nil)
	}

	result, err := h.service.ListRenders(c.Context(), briefID)
	if err != nil {
		if err == store.ErrNotFound {
			return response.NotFound(c, "Brief not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

// Segments handles GET /api/briefs/:briefId/segments
func (h *BriefHandler) Segments(c *fiber.Ctx) error {
	briefID := c.Params("briefId")
	if briefID == "" {
		return response.ValidationError(c, "Brief ID is required", nil)
	}

	result, err := h.service.ListSegments(c.Context(), briefID)
	if err != nil {
		if err == store.ErrNotFound {
			return response.NotFound(c, "Brief not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}
