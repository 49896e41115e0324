package subscription

import (
	"fmt"
	"time"

	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
)

// Actor identifies who caused a transition.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
	ActorSystem   Actor = "system"
)

func (a Actor) IsValid() bool {
	return a == ActorCustomer || a == ActorAdmin || a == ActorSystem
}

// Event is an append-only journal entry for one status change.
type Event struct {
	id             uint
	subscriptionID uint
	customerID     uint
	fromStatus     vo.SubscriptionStatus
	toStatus       vo.SubscriptionStatus
	actor          Actor
	metadata       map[string]any
	occurredAt     time.Time
}

// NewEvents turns the pending changes of sub into journal entries.
func NewEvents(sub *Subscription, actor Actor, metadata map[string]any) ([]*Event, error) {
	if sub.ID() == 0 {
		return nil, fmt.Errorf("subscription must be persisted before journaling")
	}
	if !actor.IsValid() {
		return nil, fmt.Errorf("invalid actor: %s", actor)
	}

	changes := sub.PullChanges()
	events := make([]*Event, 0, len(changes))
	for _, c := range changes {
		events = append(events, &Event{
			subscriptionID: sub.ID(),
			customerID:     sub.CustomerID(),
			fromStatus:     c.From,
			toStatus:       c.To,
			actor:          actor,
			metadata:       copyMetadata(metadata),
			occurredAt:     c.At,
		})
	}
	return events, nil
}

type EventReconstructParams struct {
	ID             uint
	SubscriptionID uint
	CustomerID     uint
	FromStatus     vo.SubscriptionStatus
	ToStatus       vo.SubscriptionStatus
	Actor          Actor
	Metadata       map[string]any
	OccurredAt     time.Time
}

func ReconstructEvent(p EventReconstructParams) *Event {
	return &Event{
		id:             p.ID,
		subscriptionID: p.SubscriptionID,
		customerID:     p.CustomerID,
		fromStatus:     p.FromStatus,
		toStatus:       p.ToStatus,
		actor:          p.Actor,
		metadata:       p.Metadata,
		occurredAt:     p.OccurredAt,
	}
}

func (e *Event) ID() uint                          { return e.id }
func (e *Event) SubscriptionID() uint              { return e.subscriptionID }
func (e *Event) CustomerID() uint                  { return e.customerID }
func (e *Event) FromStatus() vo.SubscriptionStatus { return e.fromStatus }
func (e *Event) ToStatus() vo.SubscriptionStatus   { return e.toStatus }
func (e *Event) Actor() Actor                      { return e.actor }
func (e *Event) Metadata() map[string]any          { return e.metadata }
func (e *Event) OccurredAt() time.Time             { return e.occurredAt }

func (e *Event) SetID(id uint) {
	e.id = id
}

func copyMetadata(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
