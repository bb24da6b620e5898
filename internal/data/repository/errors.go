package repository

import (
	"errors"
	"fmt"

	"yamdb/pkg/apperr"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"

	constraintSelfComment = "self_commenting_check"
)

// mapPgError translates constraint violations into apperr sentinels so the
// layers above never look at SQLSTATE codes. Other errors are returned as is.
func mapPgError(err error, resource string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return apperr.AlreadyExists(resource, fmt.Sprintf("(%s)", pgErr.ConstraintName))
	case codeForeignKeyViolation:
		return apperr.New(apperr.ErrInvalidInput, resource+" references a missing row", pgErr.ConstraintName)
	case codeCheckViolation:
		if pgErr.ConstraintName == constraintSelfComment {
			return fmt.Errorf("%s: %w", resource, apperr.ErrSelfComment)
		}
		return apperr.New(apperr.ErrInvalidInput, resource+" violates a constraint", pgErr.ConstraintName)
	}
	return err
}
