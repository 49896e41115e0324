package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/shared/constants"
)

// CustomerModel maps the customers table owned by customer management.
// This service only reads it.
type CustomerModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;uniqueIndex"`
	Name      string `gorm:"not null;size:100"`
	Phone     string `gorm:"size:20"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CustomerModel) TableName() string {
	return constants.TableCustomers
}
