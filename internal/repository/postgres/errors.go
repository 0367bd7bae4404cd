package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Коды ошибок Postgres, означающие нарушение ограничений схемы
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// pgErrorCode извлекает SQLSTATE из ошибки pgx/v5 или lib/pq
func pgErrorCode(err error) string {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// isConstraintViolation проверяет нарушение NOT NULL / FOREIGN KEY / CHECK
func isConstraintViolation(err error) bool {
	switch pgErrorCode(err) {
	case pgNotNullViolation, pgForeignKeyViolation, pgCheckViolation:
		return true
	default:
		return false
	}
}
