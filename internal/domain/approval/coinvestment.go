package approval

import (
	"fmt"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

var _ Deal = CoInvestmentOfferDeal{}

// CoInvestmentOfferDeal variante de oferta de co-inversión.
// Solo la compuerta del asesor del inversionista es autoridad de este núcleo; las etapas del líder y de la
// startup se exponen como estado de solo lectura.
type CoInvestmentOfferDeal struct {
	Offer entity.CoInvestmentOffer
}

func (d CoInvestmentOfferDeal) Kind() Kind     { return KindCoInvestmentOffer }
func (d CoInvestmentOfferDeal) DealID() string { return d.Offer.ID }
func (d CoInvestmentOfferDeal) Rejected() bool { return d.Offer.Status.IsRejection() }

func (d CoInvestmentOfferDeal) EvaluateGate(actor entity.Actor) GateResult {
	o := d.Offer
	if o.ID == "" {
		return deny(domain.ErrInvalidReference, "oferta de co-inversión sin id")
	}
	if r := checkActor(actor); r != nil {
		return *r
	}
	if actor.Role != entity.RoleInvestorAdvisor {
		return deny(domain.ErrUnauthorizedAction, "solo el asesor del inversionista decide en co-inversión")
	}
	if o.InvestorAdvisorID != "" && o.InvestorAdvisorID != actor.PartyID {
		return deny(domain.ErrUnauthorizedAction, "no es el asesor del inversionista de esta oferta")
	}
	if o.Status != entity.CoStatusPendingInvestorAdvisor {
		return deny(domain.ErrStaleState, fmt.Sprintf("estado actual %s", o.Status))
	}
	return allow(GateInvestorAdvisor)
}

// Decide approve → pending_lead_investor_approval; reject → investor_advisor_rejected.
func (d CoInvestmentOfferDeal) Decide(actor entity.Actor, decision Decision) (Deal, error) {
	if _, err := decide(d, actor, decision); err != nil {
		return nil, err
	}
	next := d.Offer
	target := entity.CoStatusPendingLeadInvestor
	if decision == DecisionReject {
		target = entity.CoStatusInvestorAdvisorRejected
	}
	if !next.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrStaleState, next.Status, target)
	}
	next.Status = target
	next.InvestorAdvisorStatus = decision.status()
	return CoInvestmentOfferDeal{Offer: next}, nil
}
