package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

var (
	_ repository.StartupRepository  = (*StartupRepo)(nil)
	_ repository.PlatformRepository = (*PlatformRepo)(nil)
)

// StartupRepo lectura de startups.
type StartupRepo struct {
	q Querier
}

// NewStartupRepository construye el adaptador.
func NewStartupRepository(q Querier) *StartupRepo {
	return &StartupRepo{q: q}
}

const startupColumns = `id, name, sector, domain, stage, round_type, country, investment_ask, equity_ask, fundraising`

func scanStartup(row pgx.Row) (entity.Startup, error) {
	var s entity.Startup
	err := row.Scan(&s.ID, &s.Name, &s.Sector, &s.Domain, &s.Stage, &s.RoundType, &s.Country,
		&s.InvestmentAsk, &s.EquityAsk, &s.Fundraising)
	return s, err
}

func (r *StartupRepo) GetByID(ctx context.Context, id string) (*entity.Startup, error) {
	s, err := scanStartup(r.q.QueryRow(ctx, `SELECT `+startupColumns+` FROM startups WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get startup: %w", err)
	}
	return &s, nil
}

func (r *StartupRepo) ListFundraising(ctx context.Context) ([]entity.Startup, error) {
	rows, err := r.q.Query(ctx, `SELECT `+startupColumns+` FROM startups WHERE fundraising ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list fundraising startups: %w", err)
	}
	defer rows.Close()
	list := []entity.Startup{}
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// PlatformRepo entidades nativas de plataforma y sus vínculos con asesores.
type PlatformRepo struct {
	q Querier
}

// NewPlatformRepository construye el adaptador.
func NewPlatformRepository(q Querier) *PlatformRepo {
	return &PlatformRepo{q: q}
}

func collectEntities(rows pgx.Rows) ([]entity.PlatformEntity, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.PlatformEntity, error) {
		var e entity.PlatformEntity
		err := row.Scan(&e.ID, &e.Kind, &e.Email, &e.Name)
		return e, err
	})
}

func (r *PlatformRepo) ListLinkedToAdvisor(ctx context.Context, advisorID string) ([]entity.PlatformEntity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.kind, p.email, p.name
		FROM advisor_platform_links l JOIN platform_entities p ON p.id = l.platform_entity_id
		WHERE l.advisor_id = $1`, advisorID)
	if err != nil {
		return nil, fmt.Errorf("list advisor platform links: %w", err)
	}
	return collectEntities(rows)
}

// FindByEmails compara contra lower(email); los emails de entrada ya vienen normalizados.
func (r *PlatformRepo) FindByEmails(ctx context.Context, emails []string) ([]entity.PlatformEntity, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, kind, email, name FROM platform_entities WHERE lower(email) = ANY($1)`, emails)
	if err != nil {
		return nil, fmt.Errorf("find platform entities: %w", err)
	}
	return collectEntities(rows)
}
