package usecases

import (
	"errors"

	"github.com/licensehub/licensehub/internal/domain/pack"
	apperrors "github.com/licensehub/licensehub/internal/shared/errors"
)

// translatePackError maps catalog sentinels to application errors and
// passes anything else through.
func translatePackError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pack.ErrPackNotFound), errors.Is(err, pack.ErrPackDeleted):
		return apperrors.NewNotFoundError(pack.ErrPackNotFound.Error())
	case errors.Is(err, pack.ErrSKUExists):
		return apperrors.NewConflictError(pack.ErrSKUExists.Error())
	case errors.Is(err, pack.ErrInvalidName),
		errors.Is(err, pack.ErrInvalidDesc),
		errors.Is(err, pack.ErrInvalidSKU),
		errors.Is(err, pack.ErrInvalidPrice),
		errors.Is(err, pack.ErrInvalidValidity):
		return apperrors.NewValidationError(err.Error())
	}
	return err
}
