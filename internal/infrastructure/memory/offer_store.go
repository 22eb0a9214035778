package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

var (
	_ repository.OfferRepository             = (*OfferStore)(nil)
	_ repository.CoInvestmentOfferRepository = (*CoInvestmentOfferStore)(nil)
	_ repository.OpportunityRepository       = (*OpportunityStore)(nil)
)

// OfferStore ofertas directas en memoria.
type OfferStore struct {
	t *table[entity.Offer]
}

func NewOfferStore() *OfferStore { return &OfferStore{t: newTable[entity.Offer]()} }

func (s *OfferStore) Create(ctx context.Context, offer *entity.Offer) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if _, ok := s.t.rows[offer.ID]; ok {
		return domain.ErrDuplicate
	}
	s.t.put(offer.ID, *offer)
	return nil
}

func (s *OfferStore) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	o, ok := s.t.rows[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *OfferStore) UpdateState(ctx context.Context, prev, next *entity.Offer) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	cur, ok := s.t.rows[prev.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Stage != prev.Stage ||
		cur.InvestorAdvisorStatus != prev.InvestorAdvisorStatus ||
		cur.StartupAdvisorStatus != prev.StartupAdvisorStatus ||
		cur.ContactDetailsRevealed != prev.ContactDetailsRevealed {
		return fmt.Errorf("%w: oferta %s modificada concurrentemente", domain.ErrStaleState, prev.ID)
	}
	cur.Stage = next.Stage
	cur.InvestorAdvisorStatus = next.InvestorAdvisorStatus
	cur.StartupAdvisorStatus = next.StartupAdvisorStatus
	cur.ContactDetailsRevealed = next.ContactDetailsRevealed
	cur.RevealedAt = next.RevealedAt
	cur.UpdatedAt = next.UpdatedAt
	s.t.rows[prev.ID] = cur
	return nil
}

func (s *OfferStore) ListByStartup(ctx context.Context, startupID string) ([]*entity.Offer, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	var list []*entity.Offer
	s.t.each(func(o entity.Offer) {
		if o.StartupID == startupID {
			list = append(list, &o)
		}
	})
	// Más recientes primero, igual que en postgres.
	slices.SortFunc(list, func(a, b *entity.Offer) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return list, nil
}

// CoInvestmentOfferStore ofertas de co-inversión en memoria.
type CoInvestmentOfferStore struct {
	t *table[entity.CoInvestmentOffer]
}

func NewCoInvestmentOfferStore() *CoInvestmentOfferStore {
	return &CoInvestmentOfferStore{t: newTable[entity.CoInvestmentOffer]()}
}

func (s *CoInvestmentOfferStore) Create(ctx context.Context, offer *entity.CoInvestmentOffer) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if _, ok := s.t.rows[offer.ID]; ok {
		return domain.ErrDuplicate
	}
	s.t.put(offer.ID, *offer)
	return nil
}

func (s *CoInvestmentOfferStore) GetByID(ctx context.Context, id string) (*entity.CoInvestmentOffer, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	o, ok := s.t.rows[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *CoInvestmentOfferStore) UpdateStatus(ctx context.Context, prev, next *entity.CoInvestmentOffer) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	cur, ok := s.t.rows[prev.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status != prev.Status {
		return fmt.Errorf("%w: oferta de co-inversión %s en %s", domain.ErrStaleState, prev.ID, cur.Status)
	}
	cur.Status = next.Status
	cur.InvestorAdvisorStatus = next.InvestorAdvisorStatus
	cur.UpdatedAt = next.UpdatedAt
	s.t.rows[prev.ID] = cur
	return nil
}

func (s *CoInvestmentOfferStore) ListByOpportunity(ctx context.Context, opportunityID string) ([]*entity.CoInvestmentOffer, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	var list []*entity.CoInvestmentOffer
	s.t.each(func(o entity.CoInvestmentOffer) {
		if o.OpportunityID == opportunityID {
			list = append(list, &o)
		}
	})
	slices.SortFunc(list, func(a, b *entity.CoInvestmentOffer) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return list, nil
}

// OpportunityStore oportunidades de co-inversión en memoria.
type OpportunityStore struct {
	t *table[entity.CoInvestmentOpportunity]
}

func NewOpportunityStore() *OpportunityStore {
	return &OpportunityStore{t: newTable[entity.CoInvestmentOpportunity]()}
}

func (s *OpportunityStore) Create(ctx context.Context, opp *entity.CoInvestmentOpportunity) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if _, ok := s.t.rows[opp.ID]; ok {
		return domain.ErrDuplicate
	}
	s.t.put(opp.ID, *opp)
	return nil
}

func (s *OpportunityStore) GetByID(ctx context.Context, id string) (*entity.CoInvestmentOpportunity, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	o, ok := s.t.rows[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *OpportunityStore) UpdateState(ctx context.Context, prev, next *entity.CoInvestmentOpportunity) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	cur, ok := s.t.rows[prev.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Stage != prev.Stage || cur.Status != prev.Status ||
		cur.LeadInvestorAdvisorStatus != prev.LeadInvestorAdvisorStatus ||
		cur.StartupAdvisorStatus != prev.StartupAdvisorStatus ||
		cur.StartupApprovalStatus != prev.StartupApprovalStatus {
		return fmt.Errorf("%w: oportunidad %s modificada concurrentemente", domain.ErrStaleState, prev.ID)
	}
	cur.Stage = next.Stage
	cur.Status = next.Status
	cur.LeadInvestorAdvisorStatus = next.LeadInvestorAdvisorStatus
	cur.StartupAdvisorStatus = next.StartupAdvisorStatus
	cur.StartupApprovalStatus = next.StartupApprovalStatus
	cur.UpdatedAt = next.UpdatedAt
	s.t.rows[prev.ID] = cur
	return nil
}
