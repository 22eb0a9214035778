package repository

import (
	"context"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

// RecommendationRepository puerto de persistencia para recomendaciones.
type RecommendationRepository interface {
	Exists(ctx context.Context, ownerID, startupID, recipientID string) (bool, error)
	// Create devuelve domain.ErrDuplicate si ya existe (ownerID, startupID, recipientID).
	Create(ctx context.Context, rec *entity.Recommendation) error
	ListByStartup(ctx context.Context, ownerID, startupID string) ([]*entity.Recommendation, error)
}
