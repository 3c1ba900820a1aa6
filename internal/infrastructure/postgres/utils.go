package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que el adaptador traduce a errores de dominio.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isForeignKeyViolation indica que el padre referenciado ya no existe (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isCheckViolation indica parent_id = id (23514, chk_categories_not_self_parent).
func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

// isSerializationFailure indica que la tx SERIALIZABLE perdió contra otra concurrente.
func isSerializationFailure(err error) bool {
	code := pgCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}
