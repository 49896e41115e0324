package valueobjects

import (
	"fmt"
	"strings"
)

type SubscriptionStatus string

const (
	StatusRequested SubscriptionStatus = "requested"
	StatusApproved  SubscriptionStatus = "approved"
	StatusActive    SubscriptionStatus = "active"
	StatusInactive  SubscriptionStatus = "inactive"
	StatusExpired   SubscriptionStatus = "expired"
)

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusRequested: true,
	StatusApproved:  true,
	StatusActive:    true,
	StatusInactive:  true,
	StatusExpired:   true,
}

// transitions lists every legal edge of the lifecycle. INACTIVE and EXPIRED
// have no outgoing edges.
var transitions = map[SubscriptionStatus][]SubscriptionStatus{
	StatusRequested: {StatusApproved, StatusActive},
	StatusApproved:  {StatusActive},
	StatusActive:    {StatusInactive, StatusExpired},
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	return ValidStatuses[s]
}

func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusInactive || s == StatusExpired
}

// IsOpen reports whether the record is active or can still become active.
func (s SubscriptionStatus) IsOpen() bool {
	return s.IsValid() && !s.IsTerminal()
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ParseStatus is case-insensitive so "ACTIVE" and "active" both parse.
func ParseStatus(s string) (SubscriptionStatus, error) {
	status := SubscriptionStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid subscription status: %s", s)
	}
	return status, nil
}

// OpenStatuses are the statuses a customer's locked working set is built from.
func OpenStatuses() []SubscriptionStatus {
	return []SubscriptionStatus{StatusRequested, StatusApproved, StatusActive}
}
