package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/shared/constants"
)

// SubscriptionModel is the persistence model for subscriptions.
// Rows are never deleted.
type SubscriptionModel struct {
	ID            uint      `gorm:"primarykey"`
	SID           string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	CustomerID    uint      `gorm:"not null;index:idx_customer_status,priority:1"`
	PackID        uint      `gorm:"not null;index:idx_subscription_pack"`
	Status        string    `gorm:"not null;size:20;index:idx_customer_status,priority:2;index:idx_status_expires,priority:1"`
	RequestedAt   time.Time `gorm:"not null"`
	ApprovedAt    *time.Time
	AssignedAt    *time.Time
	ExpiresAt     *time.Time `gorm:"index:idx_status_expires,priority:2"`
	DeactivatedAt *time.Time
	Version       int `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time `gorm:"index:idx_subscription_updated_at"`
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
