package memory

import (
	"context"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

var _ repository.MandateRepository = (*MandateStore)(nil)

// MandateStore mandatos en memoria.
type MandateStore struct {
	t *table[entity.Mandate]
}

func NewMandateStore() *MandateStore { return &MandateStore{t: newTable[entity.Mandate]()} }

func cloneMandate(m entity.Mandate) entity.Mandate {
	m.InvestorIDs = append([]string(nil), m.InvestorIDs...)
	return m
}

func (s *MandateStore) Create(ctx context.Context, mandate *entity.Mandate) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if _, ok := s.t.rows[mandate.ID]; ok {
		return domain.ErrDuplicate
	}
	s.t.put(mandate.ID, cloneMandate(*mandate))
	return nil
}

func (s *MandateStore) GetByID(ctx context.Context, id string) (*entity.Mandate, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	m, ok := s.t.rows[id]
	if !ok {
		return nil, nil
	}
	m = cloneMandate(m)
	return &m, nil
}

func (s *MandateStore) Update(ctx context.Context, mandate *entity.Mandate) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if _, ok := s.t.rows[mandate.ID]; !ok {
		return domain.ErrNotFound
	}
	s.t.put(mandate.ID, cloneMandate(*mandate))
	return nil
}

func (s *MandateStore) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Mandate, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	var list []*entity.Mandate
	s.t.each(func(m entity.Mandate) {
		if m.OwnerID == ownerID {
			c := cloneMandate(m)
			list = append(list, &c)
		}
	})
	return list, nil
}

func (s *MandateStore) Delete(ctx context.Context, id string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	s.t.remove(id)
	return nil
}
