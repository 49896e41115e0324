package subscription

import (
	"fmt"
	"time"

	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/id"
)

const (
	minValidityMonths = 1
	maxValidityMonths = 12
)

// Terms is what activation needs to know about a pack.
type Terms interface {
	ID() uint
	ValidityMonths() int
}

// StatusChange is one applied transition, kept until the journal drains it.
type StatusChange struct {
	From vo.SubscriptionStatus
	To   vo.SubscriptionStatus
	At   time.Time
}

// Subscription is a customer's instance of a pack. Status and its timestamps
// only change through the transition methods below.
type Subscription struct {
	id            uint
	sid           string
	customerID    uint
	packID        uint
	status        vo.SubscriptionStatus
	requestedAt   time.Time
	approvedAt    *time.Time
	assignedAt    *time.Time
	expiresAt     *time.Time
	deactivatedAt *time.Time
	version       int
	createdAt     time.Time
	updatedAt     time.Time

	changes []StatusChange
}

// NewRequestedSubscription creates a customer request awaiting approval.
func NewRequestedSubscription(customerID, packID uint, now time.Time) (*Subscription, error) {
	s, err := newSubscription(customerID, packID, vo.StatusRequested, now)
	if err != nil {
		return nil, err
	}
	s.record("", vo.StatusRequested, now)
	return s, nil
}

// NewAssignedSubscription creates a record that is active from the start,
// bypassing the request and approval steps.
func NewAssignedSubscription(customerID uint, terms Terms, now time.Time) (*Subscription, error) {
	if terms == nil {
		return nil, fmt.Errorf("pack terms are required")
	}
	s, err := newSubscription(customerID, terms.ID(), vo.StatusRequested, now)
	if err != nil {
		return nil, err
	}
	// Creation and activation happen in the same instant; only the
	// activation is journaled.
	if err := s.activate(terms, now); err != nil {
		return nil, err
	}
	s.changes[0].From = ""
	return s, nil
}

func newSubscription(customerID, packID uint, status vo.SubscriptionStatus, now time.Time) (*Subscription, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if packID == 0 {
		return nil, fmt.Errorf("pack ID is required")
	}

	sid, err := id.NewSubscriptionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription ID: %w", err)
	}

	return &Subscription{
		sid:         sid,
		customerID:  customerID,
		packID:      packID,
		status:      status,
		requestedAt: now,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructParams carries persisted state back into the aggregate.
type ReconstructParams struct {
	ID            uint
	SID           string
	CustomerID    uint
	PackID        uint
	Status        vo.SubscriptionStatus
	RequestedAt   time.Time
	ApprovedAt    *time.Time
	AssignedAt    *time.Time
	ExpiresAt     *time.Time
	DeactivatedAt *time.Time
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ReconstructSubscription(p ReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.CustomerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if p.PackID == 0 {
		return nil, fmt.Errorf("pack ID is required")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}
	if p.Status == vo.StatusActive && (p.ExpiresAt == nil || p.AssignedAt == nil) {
		return nil, fmt.Errorf("active subscription %d has no validity window", p.ID)
	}

	return &Subscription{
		id:            p.ID,
		sid:           p.SID,
		customerID:    p.CustomerID,
		packID:        p.PackID,
		status:        p.Status,
		requestedAt:   p.RequestedAt,
		approvedAt:    p.ApprovedAt,
		assignedAt:    p.AssignedAt,
		expiresAt:     p.ExpiresAt,
		deactivatedAt: p.DeactivatedAt,
		version:       p.Version,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                      { return s.id }
func (s *Subscription) SID() string                   { return s.sid }
func (s *Subscription) CustomerID() uint              { return s.customerID }
func (s *Subscription) PackID() uint                  { return s.packID }
func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }
func (s *Subscription) RequestedAt() time.Time        { return s.requestedAt }
func (s *Subscription) ApprovedAt() *time.Time        { return s.approvedAt }
func (s *Subscription) AssignedAt() *time.Time        { return s.assignedAt }
func (s *Subscription) ExpiresAt() *time.Time         { return s.expiresAt }
func (s *Subscription) DeactivatedAt() *time.Time     { return s.deactivatedAt }
func (s *Subscription) Version() int                  { return s.version }
func (s *Subscription) CreatedAt() time.Time          { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time          { return s.updatedAt }

func (s *Subscription) IsActive() bool {
	return s.status == vo.StatusActive
}

// SetID sets the ID after persistence
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IncrementVersion is called by the repository after a successful
// conditional update.
func (s *Subscription) IncrementVersion() {
	s.version++
}

// Approve moves a request to APPROVED without activating it.
func (s *Subscription) Approve(now time.Time) error {
	if s.status != vo.StatusRequested {
		return fmt.Errorf("%w: current status %s", ErrNotRequested, s.status)
	}
	if err := s.transition(vo.StatusApproved, now); err != nil {
		return err
	}
	s.approvedAt = ptr(now)
	return nil
}

// Activate makes the record ACTIVE with a validity window starting now.
// The caller must have superseded any other ACTIVE record of the customer.
func (s *Subscription) Activate(terms Terms, now time.Time) error {
	if terms == nil {
		return fmt.Errorf("pack terms are required")
	}
	if terms.ID() != s.packID {
		return fmt.Errorf("pack %d does not match subscription pack %d", terms.ID(), s.packID)
	}
	return s.activate(terms, now)
}

func (s *Subscription) activate(terms Terms, now time.Time) error {
	months := terms.ValidityMonths()
	if months < minValidityMonths || months > maxValidityMonths {
		return fmt.Errorf("%w: got %d", ErrInvalidValidity, months)
	}
	if err := s.transition(vo.StatusActive, now); err != nil {
		return err
	}
	if s.approvedAt == nil {
		s.approvedAt = ptr(now)
	}
	s.assignedAt = ptr(now)
	s.expiresAt = ptr(biztime.AddMonths(now, months))
	return nil
}

// Deactivate ends an ACTIVE record before its expiry.
func (s *Subscription) Deactivate(now time.Time) error {
	if err := s.transition(vo.StatusInactive, now); err != nil {
		return err
	}
	s.deactivatedAt = ptr(now)
	return nil
}

// Expire marks an ACTIVE record whose window has passed as EXPIRED.
func (s *Subscription) Expire(now time.Time) error {
	if s.status == vo.StatusActive && (s.expiresAt == nil || !s.expiresAt.Before(now)) {
		return ErrNotYetExpired
	}
	return s.transition(vo.StatusExpired, now)
}

// IsValid reports whether the record grants access at now.
func (s *Subscription) IsValid(now time.Time) bool {
	return IsValid(s, now)
}

// PullChanges returns and clears the transitions applied since the last call.
func (s *Subscription) PullChanges() []StatusChange {
	changes := s.changes
	s.changes = nil
	return changes
}

func (s *Subscription) transition(to vo.SubscriptionStatus, now time.Time) error {
	if !s.status.CanTransitionTo(to) {
		return ErrInvalidTransition(s.status, to)
	}
	s.record(s.status, to, now)
	s.status = to
	s.updatedAt = now
	return nil
}

func (s *Subscription) record(from, to vo.SubscriptionStatus, at time.Time) {
	s.changes = append(s.changes, StatusChange{From: from, To: to, At: at})
}

func ptr(t time.Time) *time.Time {
	return &t
}
