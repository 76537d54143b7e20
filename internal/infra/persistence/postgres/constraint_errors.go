package postgres

import (
	"fintrack/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
)

const identitiesEmailConstraint = "identities_email_key"

// isUniqueConstraintViolation reports a unique violation whether or not the
// dialector translated errors into gorm sentinels.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// isEmailConstraintViolation narrows a unique violation to the email key.
// A translated gorm.ErrDuplicatedKey carries no constraint name, so a collision
// on identities_external_ref_key is then also reported as an email collision.
// External refs are uuid v7 values, which do not collide in practice.
func isEmailConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation &&
			(pgErr.ConstraintName == "" || pgErr.ConstraintName == identitiesEmailConstraint)
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotNullConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgNotNullViolation
}
