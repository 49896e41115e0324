package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/licensehub/licensehub/internal/shared/constants"
)

// SubscriptionEventModel is one row of the append-only transition journal.
type SubscriptionEventModel struct {
	ID             uint   `gorm:"primarykey"`
	SubscriptionID uint   `gorm:"not null;index:idx_event_subscription"`
	CustomerID     uint   `gorm:"not null;index:idx_event_customer"`
	FromStatus     string `gorm:"size:20"`
	ToStatus       string `gorm:"not null;size:20"`
	Actor          string `gorm:"not null;size:20"`
	Metadata       datatypes.JSON
	OccurredAt     time.Time `gorm:"not null"`
}

func (SubscriptionEventModel) TableName() string {
	return constants.TableSubscriptionEvents
}
