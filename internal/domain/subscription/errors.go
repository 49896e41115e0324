package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound     = errors.New("subscription not found")
	ErrNoActiveSubscription     = errors.New("no active subscription found")
	ErrActiveSubscriptionExists = errors.New("customer already has an active subscription")
	ErrMultipleActive           = errors.New("customer has more than one active subscription")
	ErrInvalidStatusTransition  = errors.New("invalid status transition")
	ErrNotRequested             = errors.New("subscription is not in requested status")
	ErrNotYetExpired            = errors.New("subscription has not reached its expiry date")
	ErrConcurrentModification   = errors.New("subscription was modified concurrently")
	ErrInvalidValidity          = errors.New("validity months must be between 1 and 12")
)

func ErrInvalidTransition(from, to fmt.Stringer) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}
