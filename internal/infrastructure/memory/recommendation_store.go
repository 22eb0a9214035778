package memory

import (
	"context"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

var _ repository.RecommendationRepository = (*RecommendationStore)(nil)

// RecommendationStore recomendaciones en memoria con unicidad (owner, startup, recipient).
type RecommendationStore struct {
	t *table[entity.Recommendation]
}

func NewRecommendationStore() *RecommendationStore {
	return &RecommendationStore{t: newTable[entity.Recommendation]()}
}

func recKey(ownerID, startupID, recipientID string) string {
	return ownerID + "|" + startupID + "|" + recipientID
}

func (s *RecommendationStore) Exists(ctx context.Context, ownerID, startupID, recipientID string) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	_, ok := s.t.rows[recKey(ownerID, startupID, recipientID)]
	return ok, nil
}

func (s *RecommendationStore) Create(ctx context.Context, rec *entity.Recommendation) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	key := recKey(rec.OwnerID, rec.StartupID, rec.RecipientID)
	if _, ok := s.t.rows[key]; ok {
		return domain.ErrDuplicate
	}
	s.t.put(key, *rec)
	return nil
}

func (s *RecommendationStore) ListByStartup(ctx context.Context, ownerID, startupID string) ([]*entity.Recommendation, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	var list []*entity.Recommendation
	s.t.each(func(r entity.Recommendation) {
		if r.OwnerID == ownerID && r.StartupID == startupID {
			list = append(list, &r)
		}
	})
	return list, nil
}
