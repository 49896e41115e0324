package dto

import (
	"time"

	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
)

func ToPackSummaryDTO(p *pack.Pack) *PackSummaryDTO {
	if p == nil {
		return nil
	}
	return &PackSummaryDTO{
		ID:             p.SID(),
		Name:           p.Name(),
		SKU:            p.SKU(),
		Price:          p.Price().StringFixed(pack.PriceScale),
		ValidityMonths: p.ValidityMonths(),
	}
}

// ToSubscriptionDTO converts sub with its pack; p may be nil when the pack
// row is gone.
func ToSubscriptionDTO(sub *subscription.Subscription, p *pack.Pack, now time.Time) *SubscriptionDTO {
	if sub == nil {
		return nil
	}
	return &SubscriptionDTO{
		ID:            sub.SID(),
		Pack:          ToPackSummaryDTO(p),
		Status:        sub.Status().String(),
		RequestedAt:   sub.RequestedAt(),
		ApprovedAt:    sub.ApprovedAt(),
		AssignedAt:    sub.AssignedAt(),
		ExpiresAt:     sub.ExpiresAt(),
		DeactivatedAt: sub.DeactivatedAt(),
		IsValid:       subscription.IsValid(sub, now),
	}
}

func ToHistoryItemDTO(sub *subscription.Subscription, p *pack.Pack) *HistoryItemDTO {
	item := &HistoryItemDTO{
		ID:            sub.SID(),
		Status:        sub.Status().String(),
		RequestedAt:   sub.RequestedAt(),
		AssignedAt:    sub.AssignedAt(),
		ExpiresAt:     sub.ExpiresAt(),
		DeactivatedAt: sub.DeactivatedAt(),
	}
	if p != nil {
		item.PackName = p.Name()
		item.PackSKU = p.SKU()
	}
	return item
}

func ToAdminSubscriptionDTO(sub *subscription.Subscription, p *pack.Pack) *AdminSubscriptionDTO {
	out := &AdminSubscriptionDTO{
		ID:            sub.SID(),
		CustomerID:    sub.CustomerID(),
		Status:        sub.Status().String(),
		RequestedAt:   sub.RequestedAt(),
		ApprovedAt:    sub.ApprovedAt(),
		AssignedAt:    sub.AssignedAt(),
		ExpiresAt:     sub.ExpiresAt(),
		DeactivatedAt: sub.DeactivatedAt(),
		CreatedAt:     sub.CreatedAt(),
		UpdatedAt:     sub.UpdatedAt(),
	}
	if p != nil {
		out.PackID = p.SID()
		out.PackName = p.Name()
		out.PackSKU = p.SKU()
		out.Price = p.Price().StringFixed(pack.PriceScale)
		out.ValidityMonths = p.ValidityMonths()
	}
	return out
}

func ToEventDTO(e *subscription.Event) *EventDTO {
	return &EventDTO{
		ID:         e.ID(),
		FromStatus: e.FromStatus().String(),
		ToStatus:   e.ToStatus().String(),
		Actor:      string(e.Actor()),
		Metadata:   e.Metadata(),
		OccurredAt: e.OccurredAt(),
	}
}

func ToEventDTOs(events []*subscription.Event) []*EventDTO {
	out := make([]*EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, ToEventDTO(e))
	}
	return out
}
