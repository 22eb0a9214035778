package repository

import (
	"context"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

// OfferRepository define el puerto de persistencia para ofertas directas (DIP).
type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	// UpdateState persiste etapa, aprobaciones y revelación solo si la fila sigue igual a prev;
	// si no, devuelve domain.ErrStaleState.
	UpdateState(ctx context.Context, prev, next *entity.Offer) error
	// ListByStartup más recientes primero (created_at, id descendentes).
	ListByStartup(ctx context.Context, startupID string) ([]*entity.Offer, error)
}
