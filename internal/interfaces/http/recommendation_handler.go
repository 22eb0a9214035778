package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/application/recommendations"
)

// RecommendationHandler maneja las recomendaciones de startups (protegido).
type RecommendationHandler struct {
	svc *recommendations.Service
}

// NewRecommendationHandler construye el handler.
func NewRecommendationHandler(svc *recommendations.Service) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// FanOut godoc
// @Summary      Recomendar una startup a destinatarios y grupos de mandatos
// @Tags         recommendations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FanOutRequest  true  "Startup, destinatarios y mandatos"
// @Success      200   {object}  dto.FanOutResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recommendations [post]
func (h *RecommendationHandler) FanOut(c *fiber.Ctx) error {
	var in dto.FanOutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.FanOut(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *RecommendationHandler) List(c *fiber.Ctx) error {
	startupID := c.Query("startup_id")
	if startupID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "startup_id es requerido"})
	}
	out, err := h.svc.List(c.UserContext(), GetActor(c), startupID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
