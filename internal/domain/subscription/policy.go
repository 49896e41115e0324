package subscription

import (
	"fmt"
	"time"

	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
)

// IsValid reports whether sub grants access at now: it must be ACTIVE and
// its expiry strictly in the future.
func IsValid(sub *Subscription, now time.Time) bool {
	if sub == nil || !sub.IsActive() || sub.expiresAt == nil {
		return false
	}
	return sub.expiresAt.After(now)
}

// CurrentActive picks the ACTIVE record out of a customer's working set.
// More than one ACTIVE record means the single-active rule was already broken.
func CurrentActive(subs []*Subscription) (*Subscription, error) {
	var active *Subscription
	for _, s := range subs {
		if !s.IsActive() {
			continue
		}
		if active != nil {
			return nil, fmt.Errorf("%w: customer %d", ErrMultipleActive, s.customerID)
		}
		active = s
	}
	return active, nil
}

// EnsureNoActive rejects a new request while the customer holds an ACTIVE record.
func EnsureNoActive(active *Subscription) error {
	if active != nil {
		return ErrActiveSubscriptionExists
	}
	return nil
}

// Supersede deactivates the customer's current ACTIVE record so another one
// can take its place. It returns the record that was deactivated, if any.
func Supersede(subs []*Subscription, now time.Time) (*Subscription, error) {
	active, err := CurrentActive(subs)
	if err != nil || active == nil {
		return nil, err
	}
	if err := active.Deactivate(now); err != nil {
		return nil, err
	}
	return active, nil
}

// WaitingFor returns the oldest REQUESTED or APPROVED record for packID,
// preferring an APPROVED one.
func WaitingFor(subs []*Subscription, packID uint) *Subscription {
	var found *Subscription
	for _, s := range subs {
		if s.packID != packID || !s.status.CanTransitionTo(vo.StatusActive) {
			continue
		}
		switch {
		case found == nil:
			found = s
		case s.status != found.status:
			if s.status == vo.StatusApproved {
				found = s
			}
		case s.requestedAt.Before(found.requestedAt):
			found = s
		}
	}
	return found
}
