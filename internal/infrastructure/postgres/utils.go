package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasPgCode(err, codeUniqueViolation)
}

// isCheckViolation verifica si un error es una violación de CHECK (23514), p. ej. quantity >= 0.
func isCheckViolation(err error) bool {
	return hasPgCode(err, codeCheckViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
