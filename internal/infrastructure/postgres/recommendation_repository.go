package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

var _ repository.RecommendationRepository = (*RecommendationRepo)(nil)

// RecommendationRepo recomendaciones sobre PostgreSQL; única por (owner_id, startup_id, recipient_id).
type RecommendationRepo struct {
	q Querier
}

// NewRecommendationRepository construye el adaptador.
func NewRecommendationRepository(q Querier) *RecommendationRepo {
	return &RecommendationRepo{q: q}
}

func (r *RecommendationRepo) Exists(ctx context.Context, ownerID, startupID, recipientID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM recommendations WHERE owner_id = $1 AND startup_id = $2 AND recipient_id = $3)`,
		ownerID, startupID, recipientID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check recommendation: %w", err)
	}
	return exists, nil
}

// Create devuelve domain.ErrDuplicate cuando otra petición insertó el mismo destinatario primero.
func (r *RecommendationRepo) Create(ctx context.Context, rec *entity.Recommendation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO recommendations (id, owner_id, startup_id, recipient_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.OwnerID, rec.StartupID, rec.RecipientID, rec.CreatedAt)
	if err != nil {
		return writeError("insert recommendation", err)
	}
	return nil
}

func (r *RecommendationRepo) ListByStartup(ctx context.Context, ownerID, startupID string) ([]*entity.Recommendation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, owner_id, startup_id, recipient_id, created_at
		FROM recommendations WHERE owner_id = $1 AND startup_id = $2 ORDER BY created_at, id`, ownerID, startupID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Recommendation, error) {
		var rec entity.Recommendation
		err := row.Scan(&rec.ID, &rec.OwnerID, &rec.StartupID, &rec.RecipientID, &rec.CreatedAt)
		return &rec, err
	})
}
