// Package contacts administra los contactos que los asesores rastrean fuera de la plataforma:
// alta, invitación y reconciliación contra las entidades nativas.
package contacts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/application/ports"
	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/reconcile"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

// Config parámetros del servicio de contactos.
type Config struct {
	InviteBaseURL string
	// Concurrency límite de escrituras simultáneas por pasada de reconciliación.
	Concurrency int
}

// Service casos de uso de contactos rastreados.
type Service struct {
	repo     repository.TrackedContactRepository
	platform repository.PlatformRepository
	events   ports.EventPublisher
	cfg      Config
	log      zerolog.Logger
	// passes agrupa pasadas simultáneas del mismo asesor en una sola.
	passes singleflight.Group
}

// NewService construye el servicio de contactos.
func NewService(
	repo repository.TrackedContactRepository,
	platform repository.PlatformRepository,
	events ports.EventPublisher,
	cfg Config,
	log zerolog.Logger,
) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &Service{
		repo:     repo,
		platform: platform,
		events:   events,
		cfg:      cfg,
		log:      log.With().Str("component", "contacts").Logger(),
	}
}

func requireAdvisor(actor entity.Actor) error {
	if actor.PartyID == "" {
		return fmt.Errorf("%w: identidad del llamador vacía", domain.ErrInvalidReference)
	}
	if !actor.Role.IsAdvisor() {
		return fmt.Errorf("%w: solo los asesores rastrean contactos", domain.ErrUnauthorizedAction)
	}
	return nil
}

// Create registra un contacto del asesor. Un email repetido para el mismo asesor es ErrDuplicate.
func (s *Service) Create(ctx context.Context, actor entity.Actor, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if err := requireAdvisor(actor); err != nil {
		return nil, err
	}
	if in.Kind != entity.ContactKindInvestor && in.Kind != entity.ContactKindStartup {
		return nil, fmt.Errorf("%w: tipo de contacto %q", domain.ErrInvalidInput, in.Kind)
	}
	name, email := strings.TrimSpace(in.Name), strings.TrimSpace(in.Email)
	if name == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidInput
	}
	existing, err := s.repo.ListByAdvisor(ctx, actor.PartyID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if reconcile.NormalizeEmail(c.Email) == reconcile.NormalizeEmail(email) {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	c := &entity.TrackedContact{
		ID:           uuid.New().String(),
		AdvisorID:    actor.PartyID,
		Kind:         in.Kind,
		Name:         name,
		Email:        email,
		Company:      strings.TrimSpace(in.Company),
		Phone:        strings.TrimSpace(in.Phone),
		InviteStatus: entity.InviteNone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// List contactos del asesor.
func (s *Service) List(ctx context.Context, actor entity.Actor) ([]dto.ContactResponse, error) {
	if err := requireAdvisor(actor); err != nil {
		return nil, err
	}
	list, err := s.repo.ListByAdvisor(ctx, actor.PartyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toContactResponse(c))
	}
	return out, nil
}

func (s *Service) owned(ctx context.Context, actor entity.Actor, id string) (*entity.TrackedContact, error) {
	if err := requireAdvisor(actor); err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.AdvisorID != actor.PartyID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

// Delete borra un contacto del asesor.
func (s *Service) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ReconcileOwner reconcilia los contactos del asesor que llama.
func (s *Service) ReconcileOwner(ctx context.Context, actor entity.Actor) (*dto.ReconcileResponse, error) {
	if err := requireAdvisor(actor); err != nil {
		return nil, err
	}
	v, err, shared := s.passes.Do(actor.PartyID, func() (interface{}, error) {
		return s.reconcileOwner(ctx, actor.PartyID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.log.Debug().Str("owner_id", actor.PartyID).Msg("pasada de reconciliación compartida")
	}
	return v.(*dto.ReconcileResponse), nil
}

// ReconcileAll ejecuta una pasada por cada asesor con contactos rastreados. Un asesor que falla no detiene
// a los demás: su error queda en Failures con el id del asesor.
func (s *Service) ReconcileAll(ctx context.Context) ([]dto.ReconcileResponse, error) {
	owners, err := s.repo.ListAdvisorIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReconcileResponse, 0, len(owners))
	for _, owner := range owners {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		res, err := s.reconcileOwner(ctx, owner)
		if err != nil {
			s.log.Error().Err(err).Str("owner_id", owner).Msg("reconciliación fallida")
			out = append(out, dto.ReconcileResponse{
				OwnerID:  owner,
				Retired:  []string{},
				Linked:   []string{},
				Failures: []dto.ItemFailure{{ID: owner, Err: err.Error()}},
			})
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

// reconcileOwner construye el índice una vez, arma el plan y aplica cada borrado o enlace de forma independiente.
// Los fallos por elemento se acumulan; los demás elementos siguen.
func (s *Service) reconcileOwner(ctx context.Context, ownerID string) (*dto.ReconcileResponse, error) {
	tracked, err := s.repo.ListByAdvisor(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	owned, err := s.platform.ListLinkedToAdvisor(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(tracked))
	contacts := make([]entity.TrackedContact, 0, len(tracked))
	for _, c := range tracked {
		contacts = append(contacts, *c)
		if e := reconcile.NormalizeEmail(c.Email); e != "" {
			emails = append(emails, e)
		}
	}
	var directory []entity.PlatformEntity
	if len(emails) > 0 {
		directory, err = s.platform.FindByEmails(ctx, emails)
		if err != nil {
			return nil, err
		}
	}

	ix := reconcile.NewIndex()
	for _, e := range owned {
		ix.AddOwned(ownerID, e)
	}
	for _, e := range directory {
		ix.AddDirectory(e)
	}
	plan := reconcile.BuildPlan(contacts, ix)

	res := &dto.ReconcileResponse{OwnerID: ownerID, Retired: []string{}, Linked: []string{}, Failures: []dto.ItemFailure{}}
	var (
		mu       sync.Mutex
		failures domain.PartialFailure
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for _, c := range plan.ToRetire {
		c := c
		g.Go(func() error {
			err := s.repo.Delete(gctx, c.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures.Add(c.ID, err)
				return nil
			}
			res.Retired = append(res.Retired, c.ID)
			return nil
		})
	}
	for _, l := range plan.ToLink {
		l := l
		g.Go(func() error {
			err := s.repo.LinkPlatform(gctx, l.Contact.ID, l.PlatformEntityID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures.Add(l.Contact.ID, err)
				return nil
			}
			res.Linked = append(res.Linked, l.Contact.ID)
			return nil
		})
	}
	_ = g.Wait()

	if !failures.Empty() {
		res.Failures = failures.Items
		s.log.Warn().Str("owner_id", ownerID).Err(&failures).Msg("reconciliación con fallos parciales")
	}
	s.log.Info().Str("owner_id", ownerID).Int("retired", len(res.Retired)).Int("linked", len(res.Linked)).
		Int("failed", len(res.Failures)).Msg("reconciliación completada")
	return res, nil
}
