package subscription

import "github.com/licensehub/licensehub/internal/shared/errors"

var errInvalidPackID = errors.NewValidationError("invalid pack ID format, expected pack_xxxxx")
