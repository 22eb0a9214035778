package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier subconjunto común de *pgxpool.Pool y pgx.Tx; los repositorios funcionan con cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// nullable convierte "" en NULL para columnas de id opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref lee una columna de texto posiblemente NULL.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
