package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MandateCriteriaDTO criterios opcionales de un mandato.
type MandateCriteriaDTO struct {
	Stage     string           `json:"stage,omitempty"`
	RoundType string           `json:"round_type,omitempty"`
	Domain    string           `json:"domain,omitempty"`
	Country   string           `json:"country,omitempty"`
	AmountMin *decimal.Decimal `json:"amount_min,omitempty"`
	AmountMax *decimal.Decimal `json:"amount_max,omitempty"`
	EquityMin *decimal.Decimal `json:"equity_min,omitempty"`
	EquityMax *decimal.Decimal `json:"equity_max,omitempty"`
}

// CreateMandateRequest entrada para crear un mandato.
type CreateMandateRequest struct {
	Name        string             `json:"name" validate:"required,min=1,max=200"`
	Criteria    MandateCriteriaDTO `json:"criteria"`
	InvestorIDs []string           `json:"investor_ids"`
}

// UpdateMandateRequest reemplaza nombre, criterios e inversionistas (nil = sin cambio).
type UpdateMandateRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1,max=200"`
	Criteria    *MandateCriteriaDTO `json:"criteria"`
	InvestorIDs *[]string           `json:"investor_ids"`
}

// MandateResponse salida de un mandato.
type MandateResponse struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"owner_id"`
	OwnerKind   string             `json:"owner_kind"`
	Name        string             `json:"name"`
	Criteria    MandateCriteriaDTO `json:"criteria"`
	InvestorIDs []string           `json:"investor_ids"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// StartupDTO candidata a evaluar contra un mandato.
type StartupDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Sector        string          `json:"sector"`
	Domain        string          `json:"domain"`
	Stage         string          `json:"stage"`
	RoundType     string          `json:"round_type"`
	Country       string          `json:"country"`
	InvestmentAsk decimal.Decimal `json:"investment_ask"`
	EquityAsk     decimal.Decimal `json:"equity_ask"`
}

// MatchRequest candidatas explícitas; vacío = startups en ronda del almacén.
type MatchRequest struct {
	Candidates []StartupDTO `json:"candidates"`
}

// MatchResponse startups que cumplen el mandato, en el orden de entrada.
type MatchResponse struct {
	MandateID string       `json:"mandate_id"`
	Items     []StartupDTO `json:"items"`
}
