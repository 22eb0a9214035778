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

var _ repository.MandateRepository = (*MandateRepo)(nil)

// MandateRepo mandatos sobre PostgreSQL. Los inversionistas de un mandato de asesor viven en mandate_investors
// y se escriben en la misma transacción que el mandato.
type MandateRepo struct {
	q  Querier
	tx *TxRunner
}

// NewMandateRepository construye el adaptador; tx abre las transacciones de escritura.
func NewMandateRepository(q Querier, tx *TxRunner) *MandateRepo {
	return &MandateRepo{q: q, tx: tx}
}

const mandateColumns = `id, owner_id, owner_kind, name, stage, round_type, domain, country,
	amount_min, amount_max, equity_min, equity_max, created_at, updated_at`

func scanMandate(row pgx.Row) (*entity.Mandate, error) {
	var m entity.Mandate
	c := &m.Criteria
	err := row.Scan(&m.ID, &m.OwnerID, &m.OwnerKind, &m.Name, &c.Stage, &c.RoundType, &c.Domain, &c.Country,
		&c.AmountMin, &c.AmountMax, &c.EquityMin, &c.EquityMax, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func writeInvestors(ctx context.Context, q Querier, m *entity.Mandate) error {
	if _, err := q.Exec(ctx, `DELETE FROM mandate_investors WHERE mandate_id = $1`, m.ID); err != nil {
		return fmt.Errorf("clear mandate investors: %w", err)
	}
	for pos, id := range m.InvestorIDs {
		if _, err := q.Exec(ctx,
			`INSERT INTO mandate_investors (mandate_id, investor_id, position) VALUES ($1, $2, $3)`,
			m.ID, id, pos); err != nil {
			return fmt.Errorf("insert mandate investor: %w", err)
		}
	}
	return nil
}

func (r *MandateRepo) readInvestors(ctx context.Context, mandateID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT investor_id FROM mandate_investors WHERE mandate_id = $1 ORDER BY position`, mandateID)
	if err != nil {
		return nil, fmt.Errorf("list mandate investors: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Create persiste el mandato y sus inversionistas.
func (r *MandateRepo) Create(ctx context.Context, m *entity.Mandate) error {
	return r.tx.Run(ctx, func(q Querier) error {
		c := m.Criteria
		_, err := q.Exec(ctx, `INSERT INTO mandates (`+mandateColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			m.ID, m.OwnerID, m.OwnerKind, m.Name, c.Stage, c.RoundType, c.Domain, c.Country,
			c.AmountMin, c.AmountMax, c.EquityMin, c.EquityMax, m.CreatedAt, m.UpdatedAt)
		if err != nil {
			return writeError("insert mandate", err)
		}
		return writeInvestors(ctx, q, m)
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *MandateRepo) GetByID(ctx context.Context, id string) (*entity.Mandate, error) {
	m, err := scanMandate(r.q.QueryRow(ctx, `SELECT `+mandateColumns+` FROM mandates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mandate: %w", err)
	}
	if m.InvestorIDs, err = r.readInvestors(ctx, m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

// Update reemplaza nombre, criterios e inversionistas.
func (r *MandateRepo) Update(ctx context.Context, m *entity.Mandate) error {
	return r.tx.Run(ctx, func(q Querier) error {
		c := m.Criteria
		cmd, err := q.Exec(ctx, `
			UPDATE mandates SET name = $2, stage = $3, round_type = $4, domain = $5, country = $6,
				amount_min = $7, amount_max = $8, equity_min = $9, equity_max = $10, updated_at = $11
			WHERE id = $1`,
			m.ID, m.Name, c.Stage, c.RoundType, c.Domain, c.Country,
			c.AmountMin, c.AmountMax, c.EquityMin, c.EquityMax, m.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update mandate: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return writeInvestors(ctx, q, m)
	})
}

// ListByOwner mandatos del dueño en orden de creación.
func (r *MandateRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Mandate, error) {
	rows, err := r.q.Query(ctx, `SELECT `+mandateColumns+` FROM mandates WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list mandates: %w", err)
	}
	var list []*entity.Mandate
	for rows.Next() {
		m, err := scanMandate(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range list {
		if m.InvestorIDs, err = r.readInvestors(ctx, m.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Delete borrado físico; mandate_investors cae por ON DELETE CASCADE.
func (r *MandateRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM mandates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete mandate: %w", err)
	}
	return nil
}
