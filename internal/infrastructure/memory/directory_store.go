package memory

import (
	"context"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/reconcile"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

var (
	_ repository.StartupRepository  = (*StartupStore)(nil)
	_ repository.PlatformRepository = (*PlatformStore)(nil)
)

// StartupStore startups en memoria; Put las carga (el CRUD de perfiles es externo).
type StartupStore struct {
	t *table[entity.Startup]
}

func NewStartupStore() *StartupStore { return &StartupStore{t: newTable[entity.Startup]()} }

// Put inserta o reemplaza startups.
func (s *StartupStore) Put(startups ...entity.Startup) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	for _, st := range startups {
		s.t.put(st.ID, st)
	}
}

func (s *StartupStore) GetByID(ctx context.Context, id string) (*entity.Startup, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	st, ok := s.t.rows[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *StartupStore) ListFundraising(ctx context.Context) ([]entity.Startup, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	list := []entity.Startup{}
	s.t.each(func(st entity.Startup) {
		if st.Fundraising {
			list = append(list, st)
		}
	})
	return list, nil
}

// PlatformStore entidades nativas de plataforma y su asociación con asesores.
type PlatformStore struct {
	t     *table[entity.PlatformEntity]
	links map[string][]string // advisorID → ids de plataforma
}

func NewPlatformStore() *PlatformStore {
	return &PlatformStore{t: newTable[entity.PlatformEntity](), links: make(map[string][]string)}
}

// Put registra entidades de plataforma.
func (s *PlatformStore) Put(entities ...entity.PlatformEntity) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	for _, e := range entities {
		s.t.put(e.ID, e)
	}
}

// LinkAdvisor asocia entidades de plataforma a un asesor.
func (s *PlatformStore) LinkAdvisor(advisorID string, platformIDs ...string) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	s.links[advisorID] = append(s.links[advisorID], platformIDs...)
}

func (s *PlatformStore) ListLinkedToAdvisor(ctx context.Context, advisorID string) ([]entity.PlatformEntity, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	var list []entity.PlatformEntity
	for _, id := range s.links[advisorID] {
		if e, ok := s.t.rows[id]; ok {
			list = append(list, e)
		}
	}
	return list, nil
}

func (s *PlatformStore) FindByEmails(ctx context.Context, emails []string) ([]entity.PlatformEntity, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	want := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		want[reconcile.NormalizeEmail(e)] = struct{}{}
	}
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	var list []entity.PlatformEntity
	s.t.each(func(e entity.PlatformEntity) {
		if _, ok := want[reconcile.NormalizeEmail(e.Email)]; ok {
			list = append(list, e)
		}
	})
	return list, nil
}
