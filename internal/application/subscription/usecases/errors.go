package usecases

import (
	"errors"

	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	apperrors "github.com/licensehub/licensehub/internal/shared/errors"
)

var errCustomerNotFound = errors.New("customer not found")

// translateLedgerError maps domain sentinels to application errors. Errors
// that are already AppErrors, or that have no mapping, pass through.
func translateLedgerError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}
	switch {
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		return apperrors.NewNotFoundError("subscription not found")
	case errors.Is(err, subscription.ErrNoActiveSubscription):
		return apperrors.NewNotFoundError("no active subscription found")
	case errors.Is(err, errCustomerNotFound):
		return apperrors.NewNotFoundError("customer not found")
	case errors.Is(err, pack.ErrPackNotFound):
		return apperrors.NewNotFoundError("subscription pack not found")
	case errors.Is(err, pack.ErrPackDeleted):
		return apperrors.NewInvalidStateError("subscription pack is no longer available")
	case errors.Is(err, subscription.ErrActiveSubscriptionExists):
		return apperrors.NewConflictError("Customer already has an active subscription")
	case errors.Is(err, subscription.ErrConcurrentModification):
		return apperrors.NewConflictError("subscription was modified concurrently, please retry")
	case errors.Is(err, subscription.ErrNotRequested):
		return apperrors.NewInvalidStateError("Subscription is not in requested status")
	case errors.Is(err, subscription.ErrInvalidStatusTransition):
		return apperrors.NewInvalidStateError("invalid subscription status transition", err.Error())
	}
	return err
}
