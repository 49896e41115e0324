package dto

import (
	"time"
)

// PackSummaryDTO is the slice of pack data shown next to a subscription.
type PackSummaryDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
	Price          string `json:"price"`
	ValidityMonths int    `json:"validity_months"`
}

// SubscriptionDTO is a customer-facing view of one record.
type SubscriptionDTO struct {
	ID            string          `json:"id"`
	Pack          *PackSummaryDTO `json:"pack"`
	Status        string          `json:"status"`
	RequestedAt   time.Time       `json:"requested_at"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	AssignedAt    *time.Time      `json:"assigned_at,omitempty"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	DeactivatedAt *time.Time      `json:"deactivated_at,omitempty"`
	IsValid       bool            `json:"is_valid"`
}

// HistoryItemDTO is one row of a customer's subscription history.
type HistoryItemDTO struct {
	ID            string     `json:"id"`
	PackName      string     `json:"pack_name"`
	PackSKU       string     `json:"pack_sku"`
	Status        string     `json:"status"`
	RequestedAt   time.Time  `json:"requested_at"`
	AssignedAt    *time.Time `json:"assigned_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
}

// AdminSubscriptionDTO is a record joined with its pack for the admin list.
type AdminSubscriptionDTO struct {
	ID             string     `json:"id"`
	CustomerID     uint       `json:"customer_id"`
	PackID         string     `json:"pack_id"`
	PackName       string     `json:"pack_name"`
	PackSKU        string     `json:"pack_sku"`
	Price          string     `json:"price"`
	ValidityMonths int        `json:"validity_months"`
	Status         string     `json:"status"`
	RequestedAt    time.Time  `json:"requested_at"`
	ApprovedAt     *time.Time `json:"approved_at"`
	AssignedAt     *time.Time `json:"assigned_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
	DeactivatedAt  *time.Time `json:"deactivated_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type EventDTO struct {
	ID         uint           `json:"id"`
	FromStatus string         `json:"from_status,omitempty"`
	ToStatus   string         `json:"to_status"`
	Actor      string         `json:"actor"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type DeactivationResult struct {
	SubscriptionID string    `json:"subscription_id"`
	DeactivatedAt  time.Time `json:"deactivated_at"`
}

// UnassignResult reports whether the call changed anything; unassigning a
// record that is no longer active succeeds without effect.
type UnassignResult struct {
	SubscriptionID string `json:"subscription_id"`
	Status         string `json:"status"`
	Changed        bool   `json:"changed"`
}

type HistoryResult struct {
	Items []*HistoryItemDTO `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type ListResult struct {
	Items []*AdminSubscriptionDTO `json:"items"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}
