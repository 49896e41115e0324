// Package customer is a read-only view of the customers owned by customer management.
package customer

import (
	"context"
	"time"
)

type Customer struct {
	id        uint
	userID    uint
	name      string
	phone     string
	deletedAt *time.Time
}

func ReconstructCustomer(id, userID uint, name, phone string, deletedAt *time.Time) *Customer {
	return &Customer{id: id, userID: userID, name: name, phone: phone, deletedAt: deletedAt}
}

func (c *Customer) ID() uint       { return c.id }
func (c *Customer) UserID() uint   { return c.userID }
func (c *Customer) Name() string   { return c.name }
func (c *Customer) Phone() string  { return c.phone }
func (c *Customer) IsActive() bool { return c.deletedAt == nil }

// Repository never returns deleted customers. Lookups return (nil, nil) on a miss.
type Repository interface {
	GetByID(ctx context.Context, id uint) (*Customer, error)
	GetByUserID(ctx context.Context, userID uint) (*Customer, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Customer, error)
	Count(ctx context.Context) (int64, error)
}
