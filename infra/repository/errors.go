package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/granafacil/financeiro/pkg/domain"
)

// Postgres SQLSTATE codes this layer cares about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgSerializationFail   = "40001"
	pgDeadlockDetected    = "40P01"
)

// MapGormErrorToDomain converts GORM and driver errors to domain errors so
// that database concerns stay inside the infrastructure layer. The error
// chain is traversed because GORM wraps driver errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrValidation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.ErrAlreadyExists
		case pgForeignKeyViolation:
			return domain.ErrValidation
		case pgSerializationFail, pgDeadlockDetected:
			return domain.ErrWriteConflict
		}
	}

	return err
}

// WrapError wraps a GORM operation and maps its error.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&record).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
