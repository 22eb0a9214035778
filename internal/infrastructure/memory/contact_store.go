package memory

import (
	"context"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

var _ repository.TrackedContactRepository = (*ContactStore)(nil)

// ContactStore contactos rastreados en memoria.
type ContactStore struct {
	t *table[entity.TrackedContact]
}

func NewContactStore() *ContactStore { return &ContactStore{t: newTable[entity.TrackedContact]()} }

func (s *ContactStore) Create(ctx context.Context, contact *entity.TrackedContact) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if _, ok := s.t.rows[contact.ID]; ok {
		return domain.ErrDuplicate
	}
	s.t.put(contact.ID, *contact)
	return nil
}

func (s *ContactStore) GetByID(ctx context.Context, id string) (*entity.TrackedContact, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	c, ok := s.t.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *ContactStore) GetByInviteToken(ctx context.Context, token string) (*entity.TrackedContact, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	var found *entity.TrackedContact
	s.t.each(func(c entity.TrackedContact) {
		if found == nil && token != "" && c.InviteToken == token {
			found = &c
		}
	})
	return found, nil
}

func (s *ContactStore) ListByAdvisor(ctx context.Context, advisorID string) ([]*entity.TrackedContact, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	var list []*entity.TrackedContact
	s.t.each(func(c entity.TrackedContact) {
		if c.AdvisorID == advisorID {
			list = append(list, &c)
		}
	})
	return list, nil
}

func (s *ContactStore) ListAdvisorIDs(ctx context.Context) ([]string, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	seen := make(map[string]struct{})
	var ids []string
	s.t.each(func(c entity.TrackedContact) {
		if _, ok := seen[c.AdvisorID]; !ok {
			seen[c.AdvisorID] = struct{}{}
			ids = append(ids, c.AdvisorID)
		}
	})
	return ids, nil
}

func (s *ContactStore) LinkPlatform(ctx context.Context, id, platformEntityID string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	c, ok := s.t.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	pid := platformEntityID
	c.IsOnPlatform = true
	c.PlatformEntityID = &pid
	s.t.rows[id] = c
	return nil
}

func (s *ContactStore) UpdateInvite(ctx context.Context, contact *entity.TrackedContact) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	c, ok := s.t.rows[contact.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.InviteStatus = contact.InviteStatus
	c.InviteToken = contact.InviteToken
	c.InvitedAt = contact.InvitedAt
	c.UpdatedAt = contact.UpdatedAt
	s.t.rows[contact.ID] = c
	return nil
}

func (s *ContactStore) Delete(ctx context.Context, id string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	s.t.remove(id)
	return nil
}
