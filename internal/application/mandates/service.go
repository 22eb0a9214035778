// Package mandates administra los mandatos de inversión y los evalúa contra startups en ronda.
package mandates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/matching"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

// Service casos de uso de mandatos. Solo el dueño edita o borra su mandato.
type Service struct {
	repo     repository.MandateRepository
	startups repository.StartupRepository
	log      zerolog.Logger
}

// NewService construye el servicio de mandatos.
func NewService(repo repository.MandateRepository, startups repository.StartupRepository, log zerolog.Logger) *Service {
	return &Service{repo: repo, startups: startups, log: log.With().Str("component", "mandates").Logger()}
}

// ownerKind asesores → mandato de asesor; inversionista → propio. Las startups no tienen mandatos.
func ownerKind(actor entity.Actor) (string, error) {
	if actor.PartyID == "" {
		return "", fmt.Errorf("%w: identidad del llamador vacía", domain.ErrInvalidReference)
	}
	switch {
	case actor.Role.IsAdvisor():
		return entity.MandateOwnerAdvisor, nil
	case actor.Role == entity.RoleInvestor:
		return entity.MandateOwnerInvestor, nil
	}
	return "", fmt.Errorf("%w: el rol %q no administra mandatos", domain.ErrUnauthorizedAction, actor.Role)
}

func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Create crea un mandato del llamador.
func (s *Service) Create(ctx context.Context, actor entity.Actor, in dto.CreateMandateRequest) (*dto.MandateResponse, error) {
	kind, err := ownerKind(actor)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	criteria := toCriteria(in.Criteria)
	if err := matching.Validate(criteria); err != nil {
		return nil, err
	}
	ids := cleanIDs(in.InvestorIDs)
	if kind != entity.MandateOwnerAdvisor && len(ids) > 0 {
		return nil, fmt.Errorf("%w: solo los mandatos de asesor agrupan inversionistas", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	m := &entity.Mandate{
		ID:          uuid.New().String(),
		OwnerID:     actor.PartyID,
		OwnerKind:   kind,
		Name:        name,
		Criteria:    criteria,
		InvestorIDs: ids,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMandateResponse(m), nil
}

// GetByID devuelve (nil, nil) si no existe; ErrForbidden si no es del llamador.
func (s *Service) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.MandateResponse, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}
	if m.OwnerID != actor.PartyID {
		return nil, domain.ErrForbidden
	}
	return toMandateResponse(m), nil
}

// List mandatos del llamador.
func (s *Service) List(ctx context.Context, actor entity.Actor) ([]dto.MandateResponse, error) {
	if _, err := ownerKind(actor); err != nil {
		return nil, err
	}
	list, err := s.repo.ListByOwner(ctx, actor.PartyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MandateResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMandateResponse(m))
	}
	return out, nil
}

func (s *Service) owned(ctx context.Context, actor entity.Actor, id string) (*entity.Mandate, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if m.OwnerID != actor.PartyID {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

// Update reemplaza los campos presentes del mandato.
func (s *Service) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateMandateRequest) (*dto.MandateResponse, error) {
	m, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		m.Name = name
	}
	if in.Criteria != nil {
		criteria := toCriteria(*in.Criteria)
		if err := matching.Validate(criteria); err != nil {
			return nil, err
		}
		m.Criteria = criteria
	}
	if in.InvestorIDs != nil {
		ids := cleanIDs(*in.InvestorIDs)
		if m.OwnerKind != entity.MandateOwnerAdvisor && len(ids) > 0 {
			return nil, fmt.Errorf("%w: solo los mandatos de asesor agrupan inversionistas", domain.ErrInvalidInput)
		}
		m.InvestorIDs = ids
	}
	m.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMandateResponse(m), nil
}

// Delete borrado físico del mandato.
func (s *Service) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Matches evalúa el mandato contra las candidatas dadas, o contra las startups en ronda si no hay ninguna.
func (s *Service) Matches(ctx context.Context, actor entity.Actor, id string, candidates []dto.StartupDTO) (*dto.MatchResponse, error) {
	m, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	var pool []entity.Startup
	if len(candidates) > 0 {
		pool = make([]entity.Startup, 0, len(candidates))
		for _, c := range candidates {
			pool = append(pool, toStartup(c))
		}
	} else {
		pool, err = s.startups.ListFundraising(ctx)
		if err != nil {
			return nil, err
		}
	}
	matched := matching.Filter(pool, m.Criteria)
	s.log.Debug().Str("mandate_id", m.ID).Int("candidates", len(pool)).Int("matched", len(matched)).
		Msg("mandato evaluado")
	resp := &dto.MatchResponse{MandateID: m.ID, Items: make([]dto.StartupDTO, 0, len(matched))}
	for _, st := range matched {
		resp.Items = append(resp.Items, toStartupDTO(st))
	}
	return resp, nil
}
