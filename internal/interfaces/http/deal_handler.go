package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dealflow-api/internal/application/deals"
	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/domain/approval"
)

// DealHandler maneja ofertas directas, oportunidades y ofertas de co-inversión (protegido).
type DealHandler struct {
	svc *deals.Service
}

// NewDealHandler construye el handler.
func NewDealHandler(svc *deals.Service) *DealHandler {
	return &DealHandler{svc: svc}
}

// CreateOffer godoc
// @Summary      Crear oferta directa
// @Tags         offers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOfferRequest  true  "Datos de la oferta"
// @Success      201   {object}  dto.OfferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/offers [post]
func (h *DealHandler) CreateOffer(c *fiber.Ctx) error {
	var in dto.CreateOfferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.CreateOffer(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetOffer godoc
// @Summary      Obtener oferta por ID
// @Tags         offers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.OfferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/offers/{id} [get]
func (h *DealHandler) GetOffer(c *fiber.Ctx) error {
	out, err := h.svc.GetOffer(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "oferta no encontrada")
	}
	return c.JSON(out)
}

// ListOffersByStartup ofertas recibidas por una startup.
func (h *DealHandler) ListOffersByStartup(c *fiber.Ctx) error {
	out, err := h.svc.ListOffersByStartup(c.UserContext(), c.Params("startupId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Negotiate godoc
// @Summary      Pasar oferta a negociación y revelar contactos
// @Tags         offers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.RevealResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/offers/{id}/negotiate [post]
func (h *DealHandler) Negotiate(c *fiber.Ctx) error {
	out, err := h.svc.Negotiate(c.UserContext(), c.Params("id"), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reveal revela contactos de una oferta ya en negociación.
func (h *DealHandler) Reveal(c *fiber.Ctx) error {
	out, err := h.svc.Reveal(c.UserContext(), c.Params("id"), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *DealHandler) CreateOpportunity(c *fiber.Ctx) error {
	var in dto.CreateOpportunityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.CreateOpportunity(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *DealHandler) GetOpportunity(c *fiber.Ctx) error {
	out, err := h.svc.GetOpportunity(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "oportunidad no encontrada")
	}
	return c.JSON(out)
}

// ListCoInvestmentOffers ofertas de terceros sobre una oportunidad.
func (h *DealHandler) ListCoInvestmentOffers(c *fiber.Ctx) error {
	out, err := h.svc.ListCoInvestmentOffers(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *DealHandler) CreateCoInvestmentOffer(c *fiber.Ctx) error {
	var in dto.CreateCoInvestmentOfferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.CreateCoInvestmentOffer(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *DealHandler) GetCoInvestmentOffer(c *fiber.Ctx) error {
	out, err := h.svc.GetCoInvestmentOffer(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "oferta de co-inversión no encontrada")
	}
	return c.JSON(out)
}

// Gate devuelve el handler de evaluación de compuerta para la variante indicada.
//
// Una compuerta cerrada responde 200 con allowed=false; solo la referencia inválida es error.
func (h *DealHandler) Gate(kind approval.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.svc.EvaluateGate(c.UserContext(), deals.Ref{Kind: kind, ID: c.Params("id")}, GetActor(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// Decide godoc
// @Summary      Aprobar o rechazar la compuerta abierta del llamador
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del trato"
// @Param        body  body  dto.DecisionRequest  true  "Decisión y precondición leída"
// @Success      200   {object}  dto.DealResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/offers/{id}/decision [post]
func (h *DealHandler) Decide(kind approval.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.DecisionRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		decision := approval.Decision(in.Decision)
		if !decision.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "decision debe ser approve o reject"})
		}
		out, err := h.svc.Decide(c.UserContext(), deals.Ref{Kind: kind, ID: c.Params("id")}, GetActor(c), decision,
			deals.Expectation{Stage: in.ExpectedStage, Status: in.ExpectedStatus})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
