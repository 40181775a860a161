package database

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes. Class 23 covers unique, foreign-key and check
// constraint rejections; class 08 covers connection failures.
const (
	classIntegrityViolation = "23"
	classConnectionError    = "08"
)

// IsConstraintViolation reports whether err stems from a write that would
// break a uniqueness, foreign-key or check constraint. Such writes are
// rejected outright and must not be retried; the enclosing transaction is
// rolled back in full.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, classIntegrityViolation)
}

// ConstraintName returns the name of the violated constraint, or an empty
// string if err is not a constraint violation.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, classIntegrityViolation) {
		return pgErr.ConstraintName
	}
	return ""
}

// IsTransient reports whether err looks like a connectivity or timeout
// failure. The store layer never retries these itself; a partially applied
// multi-statement transaction is unsafe to replay without caller-level
// idempotency, so the decision is left to the caller.
func IsTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, classConnectionError)
}
