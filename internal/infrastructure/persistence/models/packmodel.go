package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/shared/constants"
)

// PackModel is the persistence model for subscription packs.
// SKU uniqueness among live packs is enforced by the repository since a
// soft-deleted pack keeps its sku.
type PackModel struct {
	ID             uint            `gorm:"primarykey"`
	SID            string          `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: pack_xxx"`
	Name           string          `gorm:"not null;size:100"`
	Description    string          `gorm:"type:text"`
	SKU            string          `gorm:"column:sku;not null;size:64;index:idx_pack_sku"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ValidityMonths int             `gorm:"not null"`
	CreatedAt      time.Time       `gorm:"index:idx_pack_created_at"`
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (PackModel) TableName() string {
	return constants.TableSubscriptionPacks
}
