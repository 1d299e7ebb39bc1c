package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the repositories translate into domain errors.
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
)

// isUniqueConstraintViolation reports duplicate-key failures, whether or not
// GORM's error translator is enabled on the connection.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return hasPgCode(err, pgUniqueViolation)
}

func isNotNullConstraintViolation(err error) bool {
	return hasPgCode(err, pgNotNullViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}

	return false
}
