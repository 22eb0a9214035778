// Package approval contiene la evaluación de compuertas de aprobación y las transiciones de etapa
// de las ofertas. Todo es puro: recibe una instantánea y devuelve otra, sin estado oculto.
package approval

import (
	"fmt"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

// Kind discrimina las variantes de Deal.
type Kind string

const (
	KindOffer             Kind = "offer"
	KindCoInvestmentOffer Kind = "co_investment_offer"
	KindOpportunity       Kind = "co_investment_opportunity"
)

// Decision decisión de un asesor (o de la startup) sobre una compuerta.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Valid indica si la decisión es conocida.
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

func (d Decision) status() entity.ApprovalStatus {
	if d == DecisionApprove {
		return entity.ApprovalApproved
	}
	return entity.ApprovalRejected
}

// Gate identifica la compuerta abierta para un actor.
type Gate string

const (
	GateNone                Gate = ""
	GateInvestorAdvisor     Gate = "investor_advisor"
	GateStartupAdvisor      Gate = "startup_advisor"
	GateLeadInvestorAdvisor Gate = "lead_investor_advisor"
	GateStartup             Gate = "startup"
)

// GateResult resultado de evaluar si un actor puede decidir ahora.
// Err envuelve ErrStaleState, ErrUnauthorizedAction o ErrInvalidReference cuando Allowed es false.
type GateResult struct {
	Allowed bool
	Gate    Gate
	Reason  string
	Err     error
}

func allow(g Gate) GateResult {
	return GateResult{Allowed: true, Gate: g, Reason: "compuerta abierta"}
}

func deny(sentinel error, reason string) GateResult {
	return GateResult{Reason: reason, Err: fmt.Errorf("%w: %s", sentinel, reason)}
}

// Deal interfaz polimórfica común a ofertas directas, ofertas de co-inversión y oportunidades.
type Deal interface {
	Kind() Kind
	DealID() string
	EvaluateGate(actor entity.Actor) GateResult
	// Decide aplica la decisión y devuelve la nueva instantánea; el receptor no se modifica.
	Decide(actor entity.Actor, decision Decision) (Deal, error)
	// Rejected indica un estado terminal de rechazo.
	Rejected() bool
}

func checkActor(actor entity.Actor) *GateResult {
	if actor.PartyID == "" {
		r := deny(domain.ErrInvalidReference, "identidad del llamador vacía")
		return &r
	}
	if !actor.Role.Valid() {
		r := deny(domain.ErrUnauthorizedAction, "rol desconocido")
		return &r
	}
	return nil
}

func decide(d Deal, actor entity.Actor, decision Decision) (Gate, error) {
	if !decision.Valid() {
		return GateNone, fmt.Errorf("%w: decisión %q", domain.ErrInvalidInput, decision)
	}
	g := d.EvaluateGate(actor)
	if !g.Allowed {
		return GateNone, g.Err
	}
	return g.Gate, nil
}
