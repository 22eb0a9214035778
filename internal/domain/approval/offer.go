package approval

import (
	"time"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

var _ Deal = OfferDeal{}

// OfferDeal variante de oferta directa.
type OfferDeal struct {
	Offer entity.Offer
}

func (d OfferDeal) Kind() Kind     { return KindOffer }
func (d OfferDeal) DealID() string { return d.Offer.ID }
func (d OfferDeal) Rejected() bool { return d.Offer.Rejected() }

// EvaluateGate asesor del inversionista en etapa 1; asesor de la startup en etapa 2.
func (d OfferDeal) EvaluateGate(actor entity.Actor) GateResult {
	o := d.Offer
	if o.ID == "" {
		return deny(domain.ErrInvalidReference, "oferta sin id")
	}
	if r := checkActor(actor); r != nil {
		return *r
	}
	switch actor.Role {
	case entity.RoleInvestorAdvisor:
		if o.InvestorAdvisorID != "" && o.InvestorAdvisorID != actor.PartyID {
			return deny(domain.ErrUnauthorizedAction, "no es el asesor del inversionista de esta oferta")
		}
		if o.Rejected() {
			return deny(domain.ErrStaleState, "la oferta fue rechazada")
		}
		if o.Stage != entity.StageInvestorAdvisor || o.InvestorAdvisorStatus != entity.ApprovalPending {
			return deny(domain.ErrStaleState, "la aprobación del asesor del inversionista no está pendiente")
		}
		return allow(GateInvestorAdvisor)
	case entity.RoleStartupAdvisor:
		if o.StartupAdvisorID != "" && o.StartupAdvisorID != actor.PartyID {
			return deny(domain.ErrUnauthorizedAction, "no es el asesor de la startup de esta oferta")
		}
		if o.Rejected() {
			return deny(domain.ErrStaleState, "la oferta fue rechazada")
		}
		if o.Stage != entity.StageStartupAdvisor || o.StartupAdvisorStatus != entity.ApprovalPending ||
			!o.InvestorAdvisorStatus.Cleared() {
			return deny(domain.ErrStaleState, "la aprobación del asesor de la startup no está pendiente")
		}
		return allow(GateStartupAdvisor)
	}
	return deny(domain.ErrUnauthorizedAction, "el rol no tiene compuerta de asesor en ofertas directas")
}

// Decide aplica approve/reject sobre la compuerta abierta.
func (d OfferDeal) Decide(actor entity.Actor, decision Decision) (Deal, error) {
	gate, err := decide(d, actor, decision)
	if err != nil {
		return nil, err
	}
	next := d.Offer
	switch gate {
	case GateInvestorAdvisor:
		next.InvestorAdvisorStatus = decision.status()
	case GateStartupAdvisor:
		next.StartupAdvisorStatus = decision.status()
	}
	next.Stage = NextStage(next.Stage, next.InvestorAdvisorStatus, next.StartupAdvisorStatus)
	return OfferDeal{Offer: next}, nil
}

// principalCanAct: solo el inversionista o la startup de la oferta negocian y revelan.
func principalCanAct(o entity.Offer, actor entity.Actor) error {
	if o.ID == "" {
		return deny(domain.ErrInvalidReference, "oferta sin id").Err
	}
	if r := checkActor(actor); r != nil {
		return r.Err
	}
	switch actor.Role {
	case entity.RoleStartup:
		if actor.PartyID != o.StartupID {
			return deny(domain.ErrUnauthorizedAction, "no es la startup de esta oferta").Err
		}
	case entity.RoleInvestor:
		if o.InvestorID == "" || actor.PartyID != o.InvestorID {
			return deny(domain.ErrUnauthorizedAction, "no es el inversionista de esta oferta").Err
		}
	default:
		return deny(domain.ErrUnauthorizedAction, "solo inversionista o startup pueden negociar").Err
	}
	if o.Rejected() {
		return deny(domain.ErrStaleState, "la oferta fue rechazada").Err
	}
	if !o.InvestorAdvisorStatus.Cleared() || !o.StartupAdvisorStatus.Cleared() {
		return deny(domain.ErrStaleState, "faltan aprobaciones de asesor").Err
	}
	return nil
}

// Negotiate mueve la oferta de etapa 3 a 4 y revela los datos de contacto.
// En etapa 4 ya revelada es un no-op: devuelve revealed=false sin error.
func Negotiate(o entity.Offer, actor entity.Actor, now time.Time) (entity.Offer, bool, error) {
	if err := principalCanAct(o, actor); err != nil {
		return o, false, err
	}
	if o.Stage < entity.StageReady {
		return o, false, deny(domain.ErrStaleState, "la oferta aún no está lista para negociar").Err
	}
	return reveal(o, now)
}

// Reveal revela los datos de contacto de una oferta que ya está en etapa 4. Idempotente.
func Reveal(o entity.Offer, actor entity.Actor, now time.Time) (entity.Offer, bool, error) {
	if err := principalCanAct(o, actor); err != nil {
		return o, false, err
	}
	if o.Stage < entity.StageNegotiation {
		return o, false, deny(domain.ErrStaleState, "la oferta no ha llegado a negociación").Err
	}
	return reveal(o, now)
}

func reveal(o entity.Offer, now time.Time) (entity.Offer, bool, error) {
	if o.Stage == entity.StageNegotiation && o.ContactDetailsRevealed {
		return o, false, nil
	}
	o.Stage = entity.StageNegotiation
	o.ContactDetailsRevealed = true
	o.RevealedAt = &now
	return o, true, nil
}
