package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed migrations/001_dealflow.sql
var schemaSQL string

// Migrate aplica el esquema; todas las sentencias son idempotentes (IF NOT EXISTS).
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
