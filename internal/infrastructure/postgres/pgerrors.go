package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/dealflow-api/internal/domain"
)

// Códigos SQLSTATE que tienen equivalente en el dominio.
const (
	sqlUniqueViolation     = "23505"
	sqlForeignKeyViolation = "23503"
	sqlCheckViolation      = "23514"
)

// writeError traduce el error de una escritura a los sentinelas del dominio:
// único → ErrDuplicate, llave foránea → ErrInvalidReference, CHECK → ErrInvalidInput.
// Cualquier otro error se envuelve con la operación.
func writeError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlUniqueViolation:
			return fmt.Errorf("%w: %s (%s)", domain.ErrDuplicate, op, pgErr.ConstraintName)
		case sqlForeignKeyViolation:
			return fmt.Errorf("%w: %s (%s)", domain.ErrInvalidReference, op, pgErr.ConstraintName)
		case sqlCheckViolation:
			return fmt.Errorf("%w: %s (%s)", domain.ErrInvalidInput, op, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
