package infra

import (
	"errors"

	"ekicare/internal/pkg/errs"
	"ekicare/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies err by its Postgres error code unless kind is given.
// The result also carries the matching errs failure kind, so callers above the
// repository can map it without knowing about RepositoryError.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	var wrapped error
	if err != nil {
		wrapped = errs.Wrap(err, msg)
	}

	repoErr := RepositoryError{Kind: k, msg: msg, err: wrapped}
	if marker := failureKind(k); marker != nil {
		return errs.Mark(repoErr, marker)
	}
	return repoErr
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConflict           RepositoryErrorKind = "CONFLICT"
	KindRetryable          RepositoryErrorKind = "RETRYABLE"
)

const (
	PgErrCodeUniqueViolation      = "23505"
	PgErrCodeForeignKeyViolation  = "23503"
	PgErrCodeSerializationFailure = "40001"
	PgErrCodeDeadlockDetected     = "40P01"
)

func classify(err error) RepositoryErrorKind {
	if err == nil {
		return KindDBFailure
	}
	if pgconv.IsNoRows(err) {
		return KindNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrCodeUniqueViolation:
			return KindDuplicateKey
		case PgErrCodeForeignKeyViolation:
			return KindForeignKeyViolated
		case PgErrCodeSerializationFailure, PgErrCodeDeadlockDetected:
			return KindRetryable
		}
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return KindRetryable
	}
	return KindDBFailure
}

func failureKind(k RepositoryErrorKind) error {
	switch k {
	case KindNotFound:
		return errs.ErrNotFound
	case KindDuplicateKey, KindConflict:
		return errs.ErrConflict
	case KindForeignKeyViolated:
		return errs.ErrValidation
	case KindRetryable:
		return errs.ErrTransient
	default:
		return nil
	}
}
