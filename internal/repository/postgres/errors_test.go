package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsConstraintViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"pgx foreign key", &pgconn.PgError{Code: "23503"}, true},
		{"pgx check", &pgconn.PgError{Code: "23514"}, true},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, false},
		{"pq not null", &pq.Error{Code: "23502"}, true},
		{"обёрнутая ошибка pgx", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), true},
		{"обычная ошибка", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isConstraintViolation(tt.err))
		})
	}
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		term     string
		expected string
	}{
		{"title", "%title%"},
		{"", "%%"},
		{"100%", `%100\%%`},
		{"snake_case", `%snake\_case%`},
		{`back\slash`, `%back\\slash%`},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.expected, likePattern(tt.term))
		})
	}
}
