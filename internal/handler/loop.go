package handler

import (
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sonicbrief/api/internal/model"
	"github.com/sonicbrief/api/internal/service"
	"github.com/sonicbrief/api/pkg/response"
)

const maxLoopSize = 50 * 1024 * 1024 // 50MB

type LoopHandler struct {
	service   *service.LoopService
	validator *validator.Validate
}

func NewLoopHandler(svc *service.LoopService, v *validator.Validate) *LoopHandler {
	return &LoopHandler{
		service:   svc,
		validator: v,
	}
}

// Register handles POST /api/loops
func (h *LoopHandler) Register(c *fiber.Ctx) error {
	moods := splitMoods(c.FormValue("moods"))
	if len(moods) == 0 {
		return response.ValidationError(c, "moods is required", nil)
	}

	tempo := 0
	if v := c.FormValue("tempo"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return response.ValidationError(c, "tempo must be a number", nil)
		}
		tempo = n
	}

	req := model.RegisterLoopRequest{
		Moods:      moods,
		MusicalKey: c.FormValue("musicalKey"),
		Tempo:      tempo,
		Type:       c.FormValue("type"),
		License:    c.FormValue("license"),
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.ValidationError(c, "File is required", nil)
	}

	if file.Size > maxLoopSize {
		return response.ValidationError(c, "File size exceeds 50MB limit", map[string]interface{}{
			"maxSize":  maxLoopSize,
			"fileSize": file.Size,
		})
	}

	contentType := file.Header.Get("Content-Type")
	validTypes := map[string]bool{
		"audio/wav":   true,
		"audio/x-wav": true,
		"audio/wave":  true,
	}
	if !validTypes[contentType] {
		return response.ValidationError(c, "Invalid file type. Supported: WAV", map[string]interface{}{
			"contentType": contentType,
		})
	}

	f, err := file.Open()
	if err != nil {
		return response.ServiceError(c, "Failed to open file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return response.ServiceError(c, "Failed to read file")
	}

	result, err := h.service.RegisterLoop(c.Context(), &req, data)
	if err != nil {
		if strings.HasPrefix(err.Error(), "invalid loop file") {
			return response.ValidationError(c, err.Error(), nil)
		}
		return response.ServiceError(c, err.Error())
	}

	if result.Duplicate {
		return response.OK(c, result)
	}
	return response.Created(c, result)
}

// List handles GET /api/loops?mood=focus
func (h *LoopHandler) List(c *fiber.Ctx) error {
	mood := c.Query("mood")
	if mood == "" {
		return response.ValidationError(c, "mood query parameter is required", nil)
	}

	result, err := h.service.ListLoops(c.Context(), model.Mood(mood))
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

func splitMoods(raw string) []string {
	var moods []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			moods = append(moods, m)
		}
	}
	return moods
}
