package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dealflow-api/internal/application/contacts"
	"github.com/jhoicas/dealflow-api/internal/application/dto"
)

// ContactHandler maneja los contactos rastreados por asesores (protegido).
type ContactHandler struct {
	svc *contacts.Service
}

// NewContactHandler construye el handler.
func NewContactHandler(svc *contacts.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reconcile godoc
// @Summary      Reconciliar contactos del asesor con la plataforma
// @Description  Retira contactos cuyo email ya está vinculado y enlaza los que coinciden con una entidad existente.
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/contacts/reconcile [post]
func (h *ContactHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.svc.ReconcileOwner(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Invite genera (o devuelve) la invitación de un contacto.
func (h *ContactHandler) Invite(c *fiber.Ctx) error {
	out, err := h.svc.SendInvite(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AcceptInvite vincula al llamador con el contacto que lo invitó.
func (h *ContactHandler) AcceptInvite(c *fiber.Ctx) error {
	out, err := h.svc.AcceptInvite(c.UserContext(), GetActor(c), c.Params("token"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
