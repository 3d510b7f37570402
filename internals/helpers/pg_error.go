package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a duplicate-key error from the
// driver. Both pq and pgx error shapes show up depending on how the
// connection was opened; the string fallback covers the sqlite driver used
// in tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// UniqueViolationColumn best-effort extracts the offending column so the
// caller can name the field in the 400 response.
func UniqueViolationColumn(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint != "" {
		msg = pqErr.Constraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		msg = pgErr.ConstraintName
	}
	switch {
	case strings.Contains(msg, "registration_number"):
		return "registration_number"
	case strings.Contains(msg, "email"):
		return "email"
	case strings.Contains(msg, "receipt"):
		return "payment_receipt_number"
	default:
		return ""
	}
}
