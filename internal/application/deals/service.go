// Package deals orquesta las compuertas de aprobación y las transiciones de etapa de ofertas directas,
// ofertas de co-inversión y oportunidades sobre el almacén compartido.
package deals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/application/ports"
	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/approval"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

// Ref referencia a un trato por variante e id.
type Ref struct {
	Kind approval.Kind
	ID   string
}

// Expectation valores leídos por el llamador; si ya no coinciden la decisión es ErrStaleState.
// Stage aplica a ofertas directas y oportunidades; Status a ofertas de co-inversión.
type Expectation struct {
	Stage  *int
	Status string
}

// Service casos de uso de aprobación.
type Service struct {
	offers   repository.OfferRepository
	coOffers repository.CoInvestmentOfferRepository
	opps     repository.OpportunityRepository
	startups repository.StartupRepository
	events   ports.EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

// NewService construye el servicio de tratos.
func NewService(
	offers repository.OfferRepository,
	coOffers repository.CoInvestmentOfferRepository,
	opps repository.OpportunityRepository,
	startups repository.StartupRepository,
	events ports.EventPublisher,
	log zerolog.Logger,
) *Service {
	return &Service{
		offers:   offers,
		coOffers: coOffers,
		opps:     opps,
		startups: startups,
		events:   events,
		log:      log.With().Str("component", "deals").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// load lee la instantánea actual del trato. Un id vacío o inexistente es ErrInvalidReference.
func (s *Service) load(ctx context.Context, ref Ref) (approval.Deal, error) {
	if ref.ID == "" {
		return nil, fmt.Errorf("%w: id vacío", domain.ErrInvalidReference)
	}
	switch ref.Kind {
	case approval.KindOffer:
		o, err := s.offers.GetByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		if o == nil {
			return nil, fmt.Errorf("%w: oferta %s", domain.ErrInvalidReference, ref.ID)
		}
		return approval.OfferDeal{Offer: *o}, nil
	case approval.KindCoInvestmentOffer:
		o, err := s.coOffers.GetByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		if o == nil {
			return nil, fmt.Errorf("%w: oferta de co-inversión %s", domain.ErrInvalidReference, ref.ID)
		}
		return approval.CoInvestmentOfferDeal{Offer: *o}, nil
	case approval.KindOpportunity:
		o, err := s.opps.GetByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		if o == nil {
			return nil, fmt.Errorf("%w: oportunidad %s", domain.ErrInvalidReference, ref.ID)
		}
		return approval.OpportunityDeal{Opportunity: *o}, nil
	}
	return nil, fmt.Errorf("%w: tipo de trato %q", domain.ErrInvalidInput, ref.Kind)
}

// EvaluateGate indica si el actor puede decidir ahora sobre el trato. Una compuerta cerrada no es error:
// se informa en Allowed y Reason.
func (s *Service) EvaluateGate(ctx context.Context, ref Ref, actor entity.Actor) (*dto.GateResponse, error) {
	deal, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	g := deal.EvaluateGate(actor)
	return &dto.GateResponse{
		Kind:    string(deal.Kind()),
		ID:      deal.DealID(),
		Allowed: g.Allowed,
		Gate:    string(g.Gate),
		Reason:  g.Reason,
	}, nil
}

// Decide aplica approve/reject del actor. La persistencia es condicional a la instantánea leída:
// si otra decisión ganó entre la lectura y la escritura se devuelve ErrStaleState.
func (s *Service) Decide(ctx context.Context, ref Ref, actor entity.Actor, decision approval.Decision, exp Expectation) (*dto.DealResponse, error) {
	deal, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := checkExpectation(deal, exp); err != nil {
		return nil, err
	}
	next, err := deal.Decide(actor, decision)
	if err != nil {
		return nil, err
	}
	next, err = s.persist(ctx, deal, next)
	if err != nil {
		return nil, err
	}

	resp := toDealResponse(next)
	ev := ports.DealDecided{
		Kind:     resp.Kind,
		DealID:   resp.ID,
		ActorID:  actor.PartyID,
		Role:     string(actor.Role),
		Decision: string(decision),
	}
	switch {
	case resp.Offer != nil:
		ev.Stage = resp.Offer.Stage
	case resp.Opportunity != nil:
		ev.Stage = resp.Opportunity.Stage
		ev.Status = resp.Opportunity.Status
	case resp.CoInvestmentOffer != nil:
		ev.Status = resp.CoInvestmentOffer.Status
	}
	s.log.Info().
		Str("kind", ev.Kind).Str("deal_id", ev.DealID).
		Str("actor_id", ev.ActorID).Str("role", ev.Role).
		Str("decision", ev.Decision).Int("stage", ev.Stage).Str("status", ev.Status).
		Msg("decisión aplicada")
	s.publish(ctx, ev.DealID, ports.EventDealDecided, ev)
	return resp, nil
}

func checkExpectation(deal approval.Deal, exp Expectation) error {
	stale := func(what string, want, got interface{}) error {
		return fmt.Errorf("%w: %s esperado %v, actual %v", domain.ErrStaleState, what, want, got)
	}
	switch d := deal.(type) {
	case approval.OfferDeal:
		if exp.Stage != nil && *exp.Stage != d.Offer.Stage {
			return stale("etapa", *exp.Stage, d.Offer.Stage)
		}
	case approval.OpportunityDeal:
		if exp.Stage != nil && *exp.Stage != d.Opportunity.Stage {
			return stale("etapa", *exp.Stage, d.Opportunity.Stage)
		}
		if exp.Status != "" && exp.Status != d.Opportunity.Status {
			return stale("estado", exp.Status, d.Opportunity.Status)
		}
	case approval.CoInvestmentOfferDeal:
		if exp.Status != "" && entity.CoInvestmentStatus(exp.Status) != d.Offer.Status {
			return stale("estado", exp.Status, d.Offer.Status)
		}
	}
	return nil
}

// persist escribe next condicionado a prev y devuelve la instantánea guardada.
func (s *Service) persist(ctx context.Context, prev, next approval.Deal) (approval.Deal, error) {
	now := s.now()
	switch p := prev.(type) {
	case approval.OfferDeal:
		n := next.(approval.OfferDeal)
		n.Offer.UpdatedAt = now
		if err := s.offers.UpdateState(ctx, &p.Offer, &n.Offer); err != nil {
			return nil, err
		}
		return n, nil
	case approval.CoInvestmentOfferDeal:
		n := next.(approval.CoInvestmentOfferDeal)
		n.Offer.UpdatedAt = now
		if err := s.coOffers.UpdateStatus(ctx, &p.Offer, &n.Offer); err != nil {
			return nil, err
		}
		return n, nil
	case approval.OpportunityDeal:
		n := next.(approval.OpportunityDeal)
		n.Opportunity.UpdatedAt = now
		if err := s.opps.UpdateState(ctx, &p.Opportunity, &n.Opportunity); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, fmt.Errorf("%w: tipo de trato %q", domain.ErrInvalidInput, prev.Kind())
}

// Negotiate lleva una oferta lista (etapa 3) a negociación y revela los datos de contacto.
func (s *Service) Negotiate(ctx context.Context, offerID string, actor entity.Actor) (*dto.RevealResponse, error) {
	return s.advance(ctx, offerID, actor, approval.Negotiate)
}

// Reveal revela los datos de contacto de una oferta en negociación. Repetirla no es error.
func (s *Service) Reveal(ctx context.Context, offerID string, actor entity.Actor) (*dto.RevealResponse, error) {
	return s.advance(ctx, offerID, actor, approval.Reveal)
}

type revealStep func(entity.Offer, entity.Actor, time.Time) (entity.Offer, bool, error)

func (s *Service) advance(ctx context.Context, offerID string, actor entity.Actor, step revealStep) (*dto.RevealResponse, error) {
	if offerID == "" {
		return nil, fmt.Errorf("%w: id de oferta vacío", domain.ErrInvalidReference)
	}
	cur, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, fmt.Errorf("%w: oferta %s", domain.ErrInvalidReference, offerID)
	}
	now := s.now()
	next, changed, err := step(*cur, actor, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return &dto.RevealResponse{Offer: toOfferResponse(cur), Revealed: false}, nil
	}
	next.UpdatedAt = now
	if err := s.offers.UpdateState(ctx, cur, &next); err != nil {
		if !errors.Is(err, domain.ErrStaleState) {
			return nil, err
		}
		// Otra petición pudo revelar primero: en ese caso el resultado es el mismo, sin evento.
		latest, gerr := s.offers.GetByID(ctx, offerID)
		if gerr != nil {
			return nil, gerr
		}
		if latest != nil && latest.Stage == entity.StageNegotiation && latest.ContactDetailsRevealed {
			return &dto.RevealResponse{Offer: toOfferResponse(latest), Revealed: false}, nil
		}
		return nil, err
	}

	s.log.Info().Str("offer_id", next.ID).Str("actor_id", actor.PartyID).Str("role", string(actor.Role)).
		Msg("datos de contacto revelados")
	s.publish(ctx, next.ID, ports.EventContactsRevealed, ports.ContactsRevealed{
		OfferID:       next.ID,
		StartupID:     next.StartupID,
		InvestorEmail: next.InvestorEmail,
		InvestorID:    next.InvestorID,
		RevealedBy:    actor.PartyID,
	})
	return &dto.RevealResponse{Offer: toOfferResponse(&next), Revealed: true}, nil
}

// publish entrega el evento sin afectar el resultado de la operación ya persistida.
func (s *Service) publish(ctx context.Context, key, eventType string, payload interface{}) {
	if s.events == nil {
		return
	}
	err := s.events.Publish(ctx, key, ports.Event{Type: eventType, OccurredAt: s.now(), Payload: payload})
	if err != nil {
		s.log.Error().Err(err).Str("event", eventType).Str("key", key).Msg("no se pudo publicar el evento")
	}
}
