package contacts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/application/ports"
	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

func (s *Service) inviteLink(token string) string {
	return strings.TrimRight(s.cfg.InviteBaseURL, "/") + "/" + token
}

// SendInvite marca la invitación como enviada y publica la solicitud de entrega.
// Si ya fue enviada o aceptada devuelve el estado actual sin publicar de nuevo.
func (s *Service) SendInvite(ctx context.Context, actor entity.Actor, contactID string) (*dto.InviteResponse, error) {
	c, err := s.owned(ctx, actor, contactID)
	if err != nil {
		return nil, err
	}
	if c.IsOnPlatform {
		return nil, fmt.Errorf("%w: el contacto ya está en la plataforma", domain.ErrConflict)
	}
	if c.InviteStatus == entity.InviteSent || c.InviteStatus == entity.InviteAccepted {
		return &dto.InviteResponse{ContactID: c.ID, Status: string(c.InviteStatus), Link: s.inviteLink(c.InviteToken)}, nil
	}

	now := time.Now().UTC()
	c.InviteStatus = entity.InviteSent
	c.InviteToken = uuid.New().String()
	c.InvitedAt = &now
	c.UpdatedAt = now
	if err := s.repo.UpdateInvite(ctx, c); err != nil {
		return nil, err
	}
	link := s.inviteLink(c.InviteToken)
	if s.events != nil {
		err := s.events.Publish(ctx, c.ID, ports.Event{
			Type:       ports.EventInvitationRequested,
			OccurredAt: now,
			Payload: ports.InvitationRequested{
				ContactID: c.ID,
				AdvisorID: c.AdvisorID,
				Email:     c.Email,
				Name:      c.Name,
				Link:      link,
			},
		})
		if err != nil {
			s.log.Error().Err(err).Str("contact_id", c.ID).Msg("no se pudo publicar la invitación")
		}
	}
	s.log.Info().Str("contact_id", c.ID).Str("advisor_id", c.AdvisorID).Msg("invitación enviada")
	return &dto.InviteResponse{ContactID: c.ID, Status: string(c.InviteStatus), Link: link}, nil
}

// AcceptInvite acepta la invitación del token y enlaza el contacto con la entidad de plataforma del llamador.
func (s *Service) AcceptInvite(ctx context.Context, actor entity.Actor, token string) (*dto.InviteResponse, error) {
	if token == "" || actor.PartyID == "" {
		return nil, fmt.Errorf("%w: token o identidad vacíos", domain.ErrInvalidReference)
	}
	c, err := s.repo.GetByInviteToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: invitación %s", domain.ErrInvalidReference, token)
	}
	// El enlace va primero: si falla, la invitación sigue abierta y se puede reintentar.
	if !c.IsOnPlatform {
		if err := s.repo.LinkPlatform(ctx, c.ID, actor.PartyID); err != nil {
			return nil, err
		}
	}
	if c.InviteStatus == entity.InviteAccepted {
		return &dto.InviteResponse{ContactID: c.ID, Status: string(c.InviteStatus)}, nil
	}
	c.InviteStatus = entity.InviteAccepted
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateInvite(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info().Str("contact_id", c.ID).Str("platform_entity_id", actor.PartyID).Msg("invitación aceptada")
	return &dto.InviteResponse{ContactID: c.ID, Status: string(c.InviteStatus)}, nil
}
