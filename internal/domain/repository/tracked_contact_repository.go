package repository

import (
	"context"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

// TrackedContactRepository puerto de persistencia para contactos rastreados por asesores.
type TrackedContactRepository interface {
	Create(ctx context.Context, contact *entity.TrackedContact) error
	GetByID(ctx context.Context, id string) (*entity.TrackedContact, error)
	GetByInviteToken(ctx context.Context, token string) (*entity.TrackedContact, error)
	ListByAdvisor(ctx context.Context, advisorID string) ([]*entity.TrackedContact, error)
	// ListAdvisorIDs asesores con al menos un contacto rastreado.
	ListAdvisorIDs(ctx context.Context) ([]string, error)
	// LinkPlatform marca is_on_platform y platform_entity_id.
	LinkPlatform(ctx context.Context, id, platformEntityID string) error
	UpdateInvite(ctx context.Context, contact *entity.TrackedContact) error
	// Delete borrado físico; no es error si ya no existe.
	Delete(ctx context.Context, id string) error
}
