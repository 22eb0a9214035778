package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOfferRequest entrada para proponer una oferta directa.
type CreateOfferRequest struct {
	StartupID               string          `json:"startup_id" validate:"required"`
	InvestorEmail           string          `json:"investor_email" validate:"required,email"`
	InvestorID              string          `json:"investor_id"` // obligatorio cuando la crea el asesor
	InvestorAdvisorID       string          `json:"investor_advisor_id"`
	StartupAdvisorID        string          `json:"startup_advisor_id"`
	RequiresInvestorAdvisor bool            `json:"requires_investor_advisor"`
	RequiresStartupAdvisor  bool            `json:"requires_startup_advisor"`
	Amount                  decimal.Decimal `json:"amount"`
	EquityPercentage        decimal.Decimal `json:"equity_percentage"`
	Currency                string          `json:"currency"`
}

// OfferResponse salida de una oferta directa.
type OfferResponse struct {
	ID                     string          `json:"id"`
	StartupID              string          `json:"startup_id"`
	InvestorEmail          string          `json:"investor_email,omitempty"` // solo tras revelar contactos
	InvestorID             string          `json:"investor_id,omitempty"`
	Amount                 decimal.Decimal `json:"amount"`
	EquityPercentage       decimal.Decimal `json:"equity_percentage"`
	Currency               string          `json:"currency"`
	Stage                  int             `json:"stage"`
	InvestorAdvisorStatus  string          `json:"investor_advisor_approval_status"`
	StartupAdvisorStatus   string          `json:"startup_advisor_approval_status"`
	ContactDetailsRevealed bool            `json:"contact_details_revealed"`
	RevealedAt             *time.Time      `json:"revealed_at,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
}

// RevealResponse resultado de negociar/revelar; Revealed=false cuando ya estaba revelada.
type RevealResponse struct {
	Offer    *OfferResponse `json:"offer"`
	Revealed bool           `json:"revealed"`
}

// CreateOpportunityRequest entrada para abrir una oportunidad de co-inversión.
type CreateOpportunityRequest struct {
	StartupID             string          `json:"startup_id" validate:"required"`
	LeadInvestorAdvisorID string          `json:"lead_investor_advisor_id"`
	StartupAdvisorID      string          `json:"startup_advisor_id"`
	InvestmentAmount      decimal.Decimal `json:"investment_amount"`
	MinimumCoInvestment   decimal.Decimal `json:"minimum_co_investment"`
	MaximumCoInvestment   decimal.Decimal `json:"maximum_co_investment"`
	EquityPercentage      decimal.Decimal `json:"equity_percentage"`
}

// OpportunityResponse salida de una oportunidad de co-inversión.
type OpportunityResponse struct {
	ID                        string          `json:"id"`
	StartupID                 string          `json:"startup_id"`
	LeadInvestorID            string          `json:"lead_investor_id"`
	InvestmentAmount          decimal.Decimal `json:"investment_amount"`
	MinimumCoInvestment       decimal.Decimal `json:"minimum_co_investment"`
	MaximumCoInvestment       decimal.Decimal `json:"maximum_co_investment"`
	LeadInvestorInvested      decimal.Decimal `json:"lead_investor_invested"`
	EquityPercentage          decimal.Decimal `json:"equity_percentage"`
	Stage                     int             `json:"stage"`
	LeadInvestorAdvisorStatus string          `json:"lead_investor_advisor_approval_status"`
	StartupAdvisorStatus      string          `json:"startup_advisor_approval_status"`
	StartupApprovalStatus     string          `json:"startup_approval_status"`
	Status                    string          `json:"status"`
	CreatedAt                 time.Time       `json:"created_at"`
}

// CreateCoInvestmentOfferRequest entrada para ofertar sobre una oportunidad.
type CreateCoInvestmentOfferRequest struct {
	OpportunityID           string          `json:"opportunity_id" validate:"required"`
	InvestorEmail           string          `json:"investor_email" validate:"required,email"`
	InvestorAdvisorID       string          `json:"investor_advisor_id"`
	RequiresInvestorAdvisor bool            `json:"requires_investor_advisor"`
	Amount                  decimal.Decimal `json:"amount"`
	EquityPercentage        decimal.Decimal `json:"equity_percentage"`
}

// CoInvestmentOfferResponse salida de una oferta de co-inversión.
type CoInvestmentOfferResponse struct {
	ID                    string          `json:"id"`
	OpportunityID         string          `json:"opportunity_id"`
	StartupID             string          `json:"startup_id"`
	InvestorEmail         string          `json:"investor_email,omitempty"` // solo una vez aceptada
	Amount                decimal.Decimal `json:"amount"`
	EquityPercentage      decimal.Decimal `json:"equity_percentage"`
	Status                string          `json:"status"`
	InvestorAdvisorStatus string          `json:"investor_advisor_approval_status"`
	CreatedAt             time.Time       `json:"created_at"`
}

// DecisionRequest decisión sobre una compuerta. Expected* permiten detectar estado desactualizado.
type DecisionRequest struct {
	Decision       string `json:"decision" validate:"required,oneof=approve reject"`
	ExpectedStage  *int   `json:"expected_stage,omitempty"`
	ExpectedStatus string `json:"expected_status,omitempty"`
}

// DealResponse estado resultante de una decisión sobre cualquier variante.
type DealResponse struct {
	Kind              string                     `json:"kind"`
	ID                string                     `json:"id"`
	Rejected          bool                       `json:"rejected"`
	Offer             *OfferResponse             `json:"offer,omitempty"`
	CoInvestmentOffer *CoInvestmentOfferResponse `json:"co_investment_offer,omitempty"`
	Opportunity       *OpportunityResponse       `json:"opportunity,omitempty"`
}

// GateResponse resultado de evaluar una compuerta.
type GateResponse struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Allowed bool   `json:"allowed"`
	Gate    string `json:"gate,omitempty"`
	Reason  string `json:"reason"`
}
