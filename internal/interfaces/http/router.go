package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dealflow-api/internal/application/contacts"
	"github.com/jhoicas/dealflow-api/internal/application/deals"
	"github.com/jhoicas/dealflow-api/internal/application/mandates"
	"github.com/jhoicas/dealflow-api/internal/application/recommendations"
	"github.com/jhoicas/dealflow-api/internal/domain/approval"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Deals           *deals.Service
	Mandates        *mandates.Service
	Contacts        *contacts.Service
	Recommendations *recommendations.Service
	JWTSecret       string
	JWTIssuer       string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	dealHandler := NewDealHandler(deps.Deals)

	// Ofertas directas
	offers := protected.Group("/offers")
	offers.Post("/", dealHandler.CreateOffer)
	offers.Get("/:id", dealHandler.GetOffer)
	offers.Get("/:id/gate", dealHandler.Gate(approval.KindOffer))
	offers.Post("/:id/decision", dealHandler.Decide(approval.KindOffer))
	offers.Post("/:id/negotiate", dealHandler.Negotiate)
	offers.Post("/:id/reveal", dealHandler.Reveal)
	protected.Get("/startups/:startupId/offers", dealHandler.ListOffersByStartup)

	// Oportunidades de co-inversión
	opps := protected.Group("/opportunities")
	opps.Post("/", dealHandler.CreateOpportunity)
	opps.Get("/:id", dealHandler.GetOpportunity)
	opps.Get("/:id/offers", dealHandler.ListCoInvestmentOffers)
	opps.Get("/:id/gate", dealHandler.Gate(approval.KindOpportunity))
	opps.Post("/:id/decision", dealHandler.Decide(approval.KindOpportunity))

	// Ofertas de co-inversión
	coOffers := protected.Group("/co-investment-offers")
	coOffers.Post("/", dealHandler.CreateCoInvestmentOffer)
	coOffers.Get("/:id", dealHandler.GetCoInvestmentOffer)
	coOffers.Get("/:id/gate", dealHandler.Gate(approval.KindCoInvestmentOffer))
	coOffers.Post("/:id/decision", dealHandler.Decide(approval.KindCoInvestmentOffer))

	// Mandatos (asesores e inversionistas)
	mandateHandler := NewMandateHandler(deps.Mandates)
	mandateGroup := protected.Group("/mandates",
		RequireRole(entity.RoleInvestorAdvisor, entity.RoleStartupAdvisor, entity.RoleInvestor))
	mandateGroup.Post("/", mandateHandler.Create)
	mandateGroup.Get("/", mandateHandler.List)
	mandateGroup.Get("/:id", mandateHandler.GetByID)
	mandateGroup.Put("/:id", mandateHandler.Update)
	mandateGroup.Delete("/:id", mandateHandler.Delete)
	mandateGroup.Post("/:id/matches", mandateHandler.Matches)

	// Contactos rastreados (solo asesores); aceptar invitación es para cualquier rol.
	contactHandler := NewContactHandler(deps.Contacts)
	protected.Post("/invitations/:token/accept", contactHandler.AcceptInvite)
	contactGroup := protected.Group("/contacts", RequireRole(entity.RoleInvestorAdvisor, entity.RoleStartupAdvisor))
	contactGroup.Post("/", contactHandler.Create)
	contactGroup.Get("/", contactHandler.List)
	contactGroup.Post("/reconcile", contactHandler.Reconcile)
	contactGroup.Delete("/:id", contactHandler.Delete)
	contactGroup.Post("/:id/invite", contactHandler.Invite)

	// Recomendaciones
	recHandler := NewRecommendationHandler(deps.Recommendations)
	recs := protected.Group("/recommendations")
	recs.Post("/", recHandler.FanOut)
	recs.Get("/", recHandler.List)
}
