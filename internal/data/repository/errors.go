package repository

import (
	"errors"
	"fmt"
	"strings"

	"review-api/pkg/apperr"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// constraintMessages names the client-facing reason for known constraints.
var constraintMessages = map[string]string{
	"users_username_key":         "username already taken",
	"users_email_key":            "email already registered",
	"categories_slug_key":        "category with this slug already exists",
	"genres_slug_key":            "genre with this slug already exists",
	"unique_review_author_title": "you have already reviewed this title",
	"title_genres_pkey":          "genre listed twice",
	"reviews_score_check":        "score must be between 1 and 10",
}

// translate maps constraint violations onto the error taxonomy. Anything else
// is wrapped unchanged so callers still see the driver error.
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg, ok := constraintMessages[pgErr.ConstraintName]
	switch pgErr.Code {
	case pgUniqueViolation:
		if !ok {
			msg = "record already exists"
		}
		return apperr.Conflict(op, msg)
	case pgForeignKeyViolation:
		return apperr.NotFound(op, "referenced record not found")
	case pgCheckViolation:
		if !ok {
			msg = "value out of range"
		}
		return apperr.Validation(op, msg, nil)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// isConstraintError tells expected violations (logged at warn) from failures.
func isConstraintError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
		return true
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere; "" matches all.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
