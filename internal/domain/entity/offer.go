package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus estado de una pista de aprobación de asesor.
type ApprovalStatus string

const (
	ApprovalNotRequired ApprovalStatus = "not_required"
	ApprovalPending     ApprovalStatus = "pending"
	ApprovalApproved    ApprovalStatus = "approved"
	ApprovalRejected    ApprovalStatus = "rejected"
)

// Valid indica si el estado es conocido.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalNotRequired, ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// Cleared indica que la pista ya no bloquea el avance (aprobada o no requerida).
func (s ApprovalStatus) Cleared() bool {
	return s == ApprovalApproved || s == ApprovalNotRequired
}

// Etapas de la oferta directa.
const (
	StageInvestorAdvisor = 1 // pendiente asesor del inversionista
	StageStartupAdvisor  = 2 // pendiente asesor de la startup
	StageReady           = 3 // lista para negociar
	StageNegotiation     = 4 // negociación: datos de contacto revelados
)

// Offer oferta directa de inversión (un inversionista → una startup).
type Offer struct {
	ID                     string
	StartupID              string
	InvestorEmail          string
	InvestorID             string
	InvestorAdvisorID      string // vacío = cualquier asesor del inversionista
	StartupAdvisorID       string // vacío = cualquier asesor de la startup
	Amount                 decimal.Decimal
	EquityPercentage       decimal.Decimal
	Currency               string
	Stage                  int
	InvestorAdvisorStatus  ApprovalStatus
	StartupAdvisorStatus   ApprovalStatus
	ContactDetailsRevealed bool
	RevealedAt             *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Rejected indica si alguna pista de asesor rechazó la oferta (terminal).
func (o Offer) Rejected() bool {
	return o.InvestorAdvisorStatus == ApprovalRejected || o.StartupAdvisorStatus == ApprovalRejected
}
