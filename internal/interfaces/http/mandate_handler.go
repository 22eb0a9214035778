package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/application/mandates"
)

// MandateHandler maneja los mandatos de inversión del llamador (protegido).
type MandateHandler struct {
	svc *mandates.Service
}

// NewMandateHandler construye el handler.
func NewMandateHandler(svc *mandates.Service) *MandateHandler {
	return &MandateHandler{svc: svc}
}

// Create godoc
// @Summary      Crear mandato
// @Tags         mandates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMandateRequest  true  "Nombre, criterios e inversionistas"
// @Success      201   {object}  dto.MandateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/mandates [post]
func (h *MandateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMandateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *MandateHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *MandateHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "mandato no encontrado")
	}
	return c.JSON(out)
}

func (h *MandateHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMandateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *MandateHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Matches godoc
// @Summary      Startups que cumplen el mandato
// @Description  Sin candidatas en el cuerpo se evalúan las startups en ronda.
// @Tags         mandates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true   "ID del mandato"
// @Param        body  body  dto.MatchRequest  false  "Candidatas"
// @Success      200   {object}  dto.MatchResponse
// @Router       /api/mandates/{id}/matches [post]
func (h *MandateHandler) Matches(c *fiber.Ctx) error {
	var in dto.MatchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.svc.Matches(c.UserContext(), GetActor(c), c.Params("id"), in.Candidates)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
