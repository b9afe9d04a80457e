package database

import (
	"errors"
	"fmt"

	"yatube/internal/core/apperr"

	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error onto apperr.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	}
	return err
}
