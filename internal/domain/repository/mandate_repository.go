package repository

import (
	"context"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

// MandateRepository puerto de persistencia para mandatos (asesor e inversionista).
type MandateRepository interface {
	Create(ctx context.Context, mandate *entity.Mandate) error
	GetByID(ctx context.Context, id string) (*entity.Mandate, error)
	Update(ctx context.Context, mandate *entity.Mandate) error
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Mandate, error)
	// Delete borrado físico.
	Delete(ctx context.Context, id string) error
}
