package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/backoffice/internal/domain"
)

// mapError converts GORM errors to domain errors. Errors that already carry a
// domain kind pass through unchanged.
func mapError(entity string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if isRecordNotFound(err) {
		return domain.NewAppError(domain.CodeNotFound, entity+" not found", err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return &domain.AppError{
			Code:    domain.CodeConflict,
			Message: entity + " already exists",
			Entity:  entity,
			Err:     err,
		}
	}
	return domain.NewAppError(domain.CodePersistence, "database error", err)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. Not all GORM dialectors translate driver-level errors to
// gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
