package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

var _ repository.OfferRepository = (*OfferRepo)(nil)

// OfferRepo implementación del puerto OfferRepository sobre PostgreSQL (usable con pool o tx).
type OfferRepo struct {
	q Querier
}

// NewOfferRepository construye el adaptador de persistencia para ofertas directas.
func NewOfferRepository(q Querier) *OfferRepo {
	return &OfferRepo{q: q}
}

const offerColumns = `id, startup_id, investor_email, investor_id, investor_advisor_id, startup_advisor_id,
	amount, equity_percentage, currency, stage, investor_advisor_approval_status, startup_advisor_approval_status,
	contact_details_revealed, revealed_at, created_at, updated_at`

func scanOffer(row pgx.Row) (*entity.Offer, error) {
	var (
		o                  entity.Offer
		investorID, ia, sa *string
		iaStatus, saStatus string
	)
	err := row.Scan(&o.ID, &o.StartupID, &o.InvestorEmail, &investorID, &ia, &sa,
		&o.Amount, &o.EquityPercentage, &o.Currency, &o.Stage, &iaStatus, &saStatus,
		&o.ContactDetailsRevealed, &o.RevealedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.InvestorID, o.InvestorAdvisorID, o.StartupAdvisorID = deref(investorID), deref(ia), deref(sa)
	o.InvestorAdvisorStatus = entity.ApprovalStatus(iaStatus)
	o.StartupAdvisorStatus = entity.ApprovalStatus(saStatus)
	return &o, nil
}

// Create persiste una nueva oferta.
func (r *OfferRepo) Create(ctx context.Context, o *entity.Offer) error {
	query := `INSERT INTO offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.StartupID, o.InvestorEmail, nullable(o.InvestorID), nullable(o.InvestorAdvisorID),
		nullable(o.StartupAdvisorID), o.Amount, o.EquityPercentage, o.Currency, o.Stage,
		string(o.InvestorAdvisorStatus), string(o.StartupAdvisorStatus),
		o.ContactDetailsRevealed, o.RevealedAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return writeError("insert offer", err)
	}
	return nil
}

// GetByID obtiene una oferta por ID; (nil, nil) si no existe.
func (r *OfferRepo) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	o, err := scanOffer(r.q.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return o, nil
}

// UpdateState escribe etapa, aprobaciones y revelación solo si la fila conserva los valores de prev.
func (r *OfferRepo) UpdateState(ctx context.Context, prev, next *entity.Offer) error {
	query := `
		UPDATE offers SET stage = $2, investor_advisor_approval_status = $3, startup_advisor_approval_status = $4,
			contact_details_revealed = $5, revealed_at = $6, updated_at = $7
		WHERE id = $1 AND stage = $8 AND investor_advisor_approval_status = $9
			AND startup_advisor_approval_status = $10 AND contact_details_revealed = $11`
	cmd, err := r.q.Exec(ctx, query,
		prev.ID, next.Stage, string(next.InvestorAdvisorStatus), string(next.StartupAdvisorStatus),
		next.ContactDetailsRevealed, next.RevealedAt, next.UpdatedAt,
		prev.Stage, string(prev.InvestorAdvisorStatus), string(prev.StartupAdvisorStatus), prev.ContactDetailsRevealed,
	)
	if err != nil {
		return fmt.Errorf("update offer state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.q, "offers", prev.ID)
	}
	return nil
}

// ListByStartup ofertas recibidas por una startup, más recientes primero.
func (r *OfferRepo) ListByStartup(ctx context.Context, startupID string) ([]*entity.Offer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+offerColumns+` FROM offers WHERE startup_id = $1 ORDER BY created_at DESC, id DESC`, startupID)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// staleOrMissing distingue una fila modificada concurrentemente de una inexistente tras un UPDATE condicional.
func staleOrMissing(ctx context.Context, q Querier, table, id string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check %s: %w", table, err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %s %s modificada concurrentemente", domain.ErrStaleState, table, id)
}
