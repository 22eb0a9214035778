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

var _ repository.TrackedContactRepository = (*TrackedContactRepo)(nil)

// TrackedContactRepo contactos rastreados sobre PostgreSQL.
type TrackedContactRepo struct {
	q Querier
}

// NewTrackedContactRepository construye el adaptador.
func NewTrackedContactRepository(q Querier) *TrackedContactRepo {
	return &TrackedContactRepo{q: q}
}

const contactColumns = `id, advisor_id, kind, name, email, company, phone, is_on_platform, platform_entity_id,
	invite_status, invite_token, invited_at, created_at, updated_at`

func scanContact(row pgx.Row) (*entity.TrackedContact, error) {
	var (
		c      entity.TrackedContact
		status string
		token  *string
	)
	err := row.Scan(&c.ID, &c.AdvisorID, &c.Kind, &c.Name, &c.Email, &c.Company, &c.Phone, &c.IsOnPlatform,
		&c.PlatformEntityID, &status, &token, &c.InvitedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.InviteStatus = entity.InviteStatus(status)
	c.InviteToken = deref(token)
	return &c, nil
}

func (r *TrackedContactRepo) getOne(ctx context.Context, where string, arg any) (*entity.TrackedContact, error) {
	c, err := scanContact(r.q.QueryRow(ctx, `SELECT `+contactColumns+` FROM tracked_contacts WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tracked contact: %w", err)
	}
	return c, nil
}

func (r *TrackedContactRepo) list(ctx context.Context, where string, arg any) ([]*entity.TrackedContact, error) {
	rows, err := r.q.Query(ctx, `SELECT `+contactColumns+` FROM tracked_contacts WHERE `+where+` ORDER BY created_at, id`, arg)
	if err != nil {
		return nil, fmt.Errorf("list tracked contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.TrackedContact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *TrackedContactRepo) Create(ctx context.Context, c *entity.TrackedContact) error {
	_, err := r.q.Exec(ctx, `INSERT INTO tracked_contacts (`+contactColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		c.ID, c.AdvisorID, c.Kind, c.Name, c.Email, c.Company, c.Phone, c.IsOnPlatform, c.PlatformEntityID,
		string(c.InviteStatus), nullable(c.InviteToken), c.InvitedAt, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return writeError("insert tracked contact", err)
	}
	return nil
}

func (r *TrackedContactRepo) GetByID(ctx context.Context, id string) (*entity.TrackedContact, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *TrackedContactRepo) GetByInviteToken(ctx context.Context, token string) (*entity.TrackedContact, error) {
	if token == "" {
		return nil, nil
	}
	return r.getOne(ctx, `invite_token = $1`, token)
}

func (r *TrackedContactRepo) ListByAdvisor(ctx context.Context, advisorID string) ([]*entity.TrackedContact, error) {
	return r.list(ctx, `advisor_id = $1`, advisorID)
}

func (r *TrackedContactRepo) ListAdvisorIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT advisor_id FROM tracked_contacts ORDER BY advisor_id`)
	if err != nil {
		return nil, fmt.Errorf("list advisors: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *TrackedContactRepo) LinkPlatform(ctx context.Context, id, platformEntityID string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE tracked_contacts SET is_on_platform = TRUE, platform_entity_id = $2, updated_at = now()
		WHERE id = $1`, id, platformEntityID)
	if err != nil {
		return fmt.Errorf("link tracked contact: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TrackedContactRepo) UpdateInvite(ctx context.Context, c *entity.TrackedContact) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE tracked_contacts SET invite_status = $2, invite_token = $3, invited_at = $4, updated_at = $5
		WHERE id = $1`,
		c.ID, string(c.InviteStatus), nullable(c.InviteToken), c.InvitedAt, c.UpdatedAt)
	if err != nil {
		return writeError("update invite", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete no falla si la fila ya no existe.
func (r *TrackedContactRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tracked_contacts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tracked contact: %w", err)
	}
	return nil
}
