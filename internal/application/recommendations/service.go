// Package recommendations difunde una startup a un conjunto de destinatarios sin duplicar envíos previos.
package recommendations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/application/ports"
	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/recommendation"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

// Service casos de uso de recomendaciones.
type Service struct {
	repo     repository.RecommendationRepository
	mandates repository.MandateRepository
	startups repository.StartupRepository
	events   ports.EventPublisher
	log      zerolog.Logger
}

// NewService construye el servicio de recomendaciones.
func NewService(
	repo repository.RecommendationRepository,
	mandates repository.MandateRepository,
	startups repository.StartupRepository,
	events ports.EventPublisher,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		mandates: mandates,
		startups: startups,
		events:   events,
		log:      log.With().Str("component", "recommendations").Logger(),
	}
}

func requireRecommender(actor entity.Actor) error {
	if actor.PartyID == "" {
		return fmt.Errorf("%w: identidad del llamador vacía", domain.ErrInvalidReference)
	}
	if !actor.Role.IsAdvisor() && actor.Role != entity.RoleInvestor {
		return fmt.Errorf("%w: el rol %q no recomienda startups", domain.ErrUnauthorizedAction, actor.Role)
	}
	return nil
}

// FanOut recomienda la startup a los destinatarios individuales y a los inversionistas de los mandatos dados.
// Cada destinatario se verifica justo antes de insertar; los que ya la tenían cuentan como omitidos.
// Sin destinatarios nuevos el resultado es vacío, no un error.
func (s *Service) FanOut(ctx context.Context, actor entity.Actor, in dto.FanOutRequest) (*dto.FanOutResponse, error) {
	if err := requireRecommender(actor); err != nil {
		return nil, err
	}
	if in.StartupID == "" {
		return nil, fmt.Errorf("%w: startup vacía", domain.ErrInvalidReference)
	}
	st, err := s.startups.GetByID(ctx, in.StartupID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: startup %s", domain.ErrInvalidReference, in.StartupID)
	}

	sel := recommendation.NewSelection()
	for _, id := range in.RecipientIDs {
		sel.SelectInvestor(id)
	}
	for _, mid := range in.MandateIDs {
		m, err := s.mandates.GetByID(ctx, mid)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("%w: mandato %s", domain.ErrInvalidReference, mid)
		}
		if m.OwnerID != actor.PartyID {
			return nil, fmt.Errorf("%w: mandato %s", domain.ErrForbidden, mid)
		}
		sel.SelectMandate(*m)
	}

	res := &dto.FanOutResponse{StartupID: st.ID, Created: []string{}, Skipped: []string{}, Failures: []dto.ItemFailure{}}
	var failures domain.PartialFailure
	for _, recipient := range sel.Recipients() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		exists, err := s.repo.Exists(ctx, actor.PartyID, st.ID, recipient)
		if err != nil {
			failures.Add(recipient, err)
			continue
		}
		if exists {
			res.Skipped = append(res.Skipped, recipient)
			continue
		}
		rec := &entity.Recommendation{
			ID:          uuid.New().String(),
			OwnerID:     actor.PartyID,
			StartupID:   st.ID,
			RecipientID: recipient,
			CreatedAt:   time.Now().UTC(),
		}
		switch err := s.repo.Create(ctx, rec); {
		case err == nil:
			res.Created = append(res.Created, recipient)
		case errors.Is(err, domain.ErrDuplicate):
			res.Skipped = append(res.Skipped, recipient)
		default:
			failures.Add(recipient, err)
		}
	}
	if !failures.Empty() {
		res.Failures = failures.Items
		s.log.Warn().Err(&failures).Str("startup_id", st.ID).Msg("recomendaciones con fallos parciales")
	}
	s.log.Info().Str("owner_id", actor.PartyID).Str("startup_id", st.ID).
		Int("created", len(res.Created)).Int("skipped", len(res.Skipped)).Msg("recomendación difundida")

	if len(res.Created) > 0 && s.events != nil {
		err := s.events.Publish(ctx, st.ID, ports.Event{
			Type:       ports.EventRecommendationsFanOut,
			OccurredAt: time.Now().UTC(),
			Payload:    res,
		})
		if err != nil {
			s.log.Error().Err(err).Str("startup_id", st.ID).Msg("no se pudo publicar la difusión")
		}
	}
	return res, nil
}

// List recomendaciones del llamador para una startup.
func (s *Service) List(ctx context.Context, actor entity.Actor, startupID string) ([]dto.RecommendationResponse, error) {
	if err := requireRecommender(actor); err != nil {
		return nil, err
	}
	list, err := s.repo.ListByStartup(ctx, actor.PartyID, startupID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecommendationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.RecommendationResponse{
			ID:          r.ID,
			OwnerID:     r.OwnerID,
			StartupID:   r.StartupID,
			RecipientID: r.RecipientID,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}
