package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CoInvestmentStatus estado de una oferta de co-inversión.
type CoInvestmentStatus string

const (
	CoStatusPendingInvestorAdvisor  CoInvestmentStatus = "pending_investor_advisor_approval"
	CoStatusPendingLeadInvestor     CoInvestmentStatus = "pending_lead_investor_approval"
	CoStatusPendingStartup          CoInvestmentStatus = "pending_startup_approval"
	CoStatusAccepted                CoInvestmentStatus = "accepted"
	CoStatusInvestorAdvisorRejected CoInvestmentStatus = "investor_advisor_rejected"
	CoStatusLeadInvestorRejected    CoInvestmentStatus = "lead_investor_rejected"
	CoStatusRejected                CoInvestmentStatus = "rejected"
)

// CoInvestmentStatuses todos los estados, en orden de avance y luego terminales de rechazo.
var CoInvestmentStatuses = []CoInvestmentStatus{
	CoStatusPendingInvestorAdvisor,
	CoStatusPendingLeadInvestor,
	CoStatusPendingStartup,
	CoStatusAccepted,
	CoStatusInvestorAdvisorRejected,
	CoStatusLeadInvestorRejected,
	CoStatusRejected,
}

// rank posición en la secuencia de avance; -1 para terminales de rechazo y desconocidos.
func (s CoInvestmentStatus) rank() int {
	switch s {
	case CoStatusPendingInvestorAdvisor:
		return 0
	case CoStatusPendingLeadInvestor:
		return 1
	case CoStatusPendingStartup:
		return 2
	case CoStatusAccepted:
		return 3
	}
	return -1
}

// Valid indica si el estado es conocido.
func (s CoInvestmentStatus) Valid() bool {
	switch s {
	case CoStatusPendingInvestorAdvisor, CoStatusPendingLeadInvestor, CoStatusPendingStartup, CoStatusAccepted,
		CoStatusInvestorAdvisorRejected, CoStatusLeadInvestorRejected, CoStatusRejected:
		return true
	}
	return false
}

// Terminal indica si no admite más transiciones.
func (s CoInvestmentStatus) Terminal() bool {
	switch s {
	case CoStatusAccepted, CoStatusInvestorAdvisorRejected, CoStatusLeadInvestorRejected, CoStatusRejected:
		return true
	}
	return false
}

// IsRejection indica si es un estado terminal de rechazo.
func (s CoInvestmentStatus) IsRejection() bool {
	return s == CoStatusInvestorAdvisorRejected || s == CoStatusLeadInvestorRejected || s == CoStatusRejected
}

// CanTransitionTo: solo hacia adelante en la secuencia o salto a un rechazo; nunca hacia atrás.
func (s CoInvestmentStatus) CanTransitionTo(next CoInvestmentStatus) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	if next.IsRejection() {
		return true
	}
	return next.rank() > s.rank()
}

// CoInvestmentOffer oferta de un tercero sobre una oportunidad de co-inversión.
type CoInvestmentOffer struct {
	ID                    string
	OpportunityID         string
	StartupID             string
	InvestorEmail         string
	InvestorID            string
	InvestorAdvisorID     string
	Amount                decimal.Decimal
	EquityPercentage      decimal.Decimal
	Status                CoInvestmentStatus
	InvestorAdvisorStatus ApprovalStatus
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Estados de la oportunidad.
const (
	OpportunityActive = "active"
	OpportunityClosed = "closed"
)

// Etapas de la oportunidad de co-inversión (la 3 no se usa en este flujo).
const (
	OpportunityStageLeadAdvisor = 1
	OpportunityStageStartup     = 2
	OpportunityStageApproved    = 4
)

// CoInvestmentOpportunity inversión del inversionista líder abierta a terceros en un sub-rango.
type CoInvestmentOpportunity struct {
	ID                        string
	StartupID                 string
	LeadInvestorID            string
	LeadInvestorAdvisorID     string
	StartupAdvisorID          string
	InvestmentAmount          decimal.Decimal
	MinimumCoInvestment       decimal.Decimal
	MaximumCoInvestment       decimal.Decimal
	EquityPercentage          decimal.Decimal
	Stage                     int
	LeadInvestorAdvisorStatus ApprovalStatus
	StartupAdvisorStatus      ApprovalStatus
	StartupApprovalStatus     ApprovalStatus
	Status                    string
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// LeadInvestorInvested monto comprometido por el líder: InvestmentAmount - MaximumCoInvestment, mínimo cero.
func (o CoInvestmentOpportunity) LeadInvestorInvested() decimal.Decimal {
	v := o.InvestmentAmount.Sub(o.MaximumCoInvestment)
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
