// Package pack holds the catalog of purchasable subscription packs.
package pack

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/licensehub/licensehub/internal/shared/id"
)

const (
	MinValidityMonths = 1
	MaxValidityMonths = 12
	MaxNameLength     = 100
	MaxSKULength      = 64
	MaxDescLength     = 1000
	PriceScale        = 2
)

// maxPrice fits DECIMAL(10,2).
var maxPrice = decimal.RequireFromString("99999999.99")

var skuPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Pack is a purchasable plan definition.
type Pack struct {
	id             uint
	sid            string
	name           string
	description    string
	sku            string
	price          decimal.Decimal
	validityMonths int
	status         Status
	createdAt      time.Time
	updatedAt      time.Time
	deletedAt      *time.Time
}

// NewPack validates and creates an active pack. The sku is normalized to lower case.
func NewPack(name, description, sku string, price decimal.Decimal, validityMonths int, now time.Time) (*Pack, error) {
	p := &Pack{
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}
	if err := p.setName(name); err != nil {
		return nil, err
	}
	if err := p.setDescription(description); err != nil {
		return nil, err
	}
	if err := p.setSKU(sku); err != nil {
		return nil, err
	}
	if err := p.setPrice(price); err != nil {
		return nil, err
	}
	if err := p.setValidity(validityMonths); err != nil {
		return nil, err
	}

	sid, err := id.NewPackID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pack ID: %w", err)
	}
	p.sid = sid

	return p, nil
}

type ReconstructParams struct {
	ID             uint
	SID            string
	Name           string
	Description    string
	SKU            string
	Price          decimal.Decimal
	ValidityMonths int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// ReconstructPack rebuilds a pack from storage. The status tag is derived
// from DeletedAt here and nowhere else.
func ReconstructPack(p ReconstructParams) (*Pack, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("pack ID cannot be zero")
	}

	status := StatusActive
	if p.DeletedAt != nil {
		status = StatusDeleted
	}

	return &Pack{
		id:             p.ID,
		sid:            p.SID,
		name:           p.Name,
		description:    p.Description,
		sku:            p.SKU,
		price:          p.Price,
		validityMonths: p.ValidityMonths,
		status:         status,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
		deletedAt:      p.DeletedAt,
	}, nil
}

func (p *Pack) ID() uint               { return p.id }
func (p *Pack) SID() string            { return p.sid }
func (p *Pack) Name() string           { return p.name }
func (p *Pack) Description() string    { return p.description }
func (p *Pack) SKU() string            { return p.sku }
func (p *Pack) Price() decimal.Decimal { return p.price }
func (p *Pack) ValidityMonths() int    { return p.validityMonths }
func (p *Pack) Status() Status         { return p.status }
func (p *Pack) CreatedAt() time.Time   { return p.createdAt }
func (p *Pack) UpdatedAt() time.Time   { return p.updatedAt }
func (p *Pack) DeletedAt() *time.Time  { return p.deletedAt }
func (p *Pack) IsDeleted() bool        { return p.status == StatusDeleted }
func (p *Pack) IsAvailable() bool      { return p.status == StatusActive }

// Clone returns an independent copy, safe to hand out from a cache.
func (p *Pack) Clone() *Pack {
	c := *p
	if p.deletedAt != nil {
		t := *p.deletedAt
		c.deletedAt = &t
	}
	return &c
}

func (p *Pack) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("pack ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("pack ID cannot be zero")
	}
	p.id = id
	return nil
}

// Patch carries the fields of a partial update; nil means unchanged.
type Patch struct {
	Name           *string
	Description    *string
	SKU            *string
	Price          *decimal.Decimal
	ValidityMonths *int
}

// SKUChanged reports whether the patch would change the pack's sku.
func (p *Pack) SKUChanged(patch Patch) bool {
	return patch.SKU != nil && NormalizeSKU(*patch.SKU) != p.sku
}

// Apply validates every field of the patch before changing anything.
func (p *Pack) Apply(patch Patch, now time.Time) error {
	if p.IsDeleted() {
		return ErrPackDeleted
	}

	next := *p
	if patch.Name != nil {
		if err := next.setName(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		if err := next.setDescription(*patch.Description); err != nil {
			return err
		}
	}
	if patch.SKU != nil {
		if err := next.setSKU(*patch.SKU); err != nil {
			return err
		}
	}
	if patch.Price != nil {
		if err := next.setPrice(*patch.Price); err != nil {
			return err
		}
	}
	if patch.ValidityMonths != nil {
		if err := next.setValidity(*patch.ValidityMonths); err != nil {
			return err
		}
	}

	next.updatedAt = now
	*p = next
	return nil
}

// MarkDeleted soft-deletes the pack.
func (p *Pack) MarkDeleted(now time.Time) error {
	if p.IsDeleted() {
		return ErrPackDeleted
	}
	p.status = StatusDeleted
	p.deletedAt = &now
	p.updatedAt = now
	return nil
}

func (p *Pack) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return fmt.Errorf("%w: must be 1-%d characters", ErrInvalidName, MaxNameLength)
	}
	p.name = name
	return nil
}

func (p *Pack) setDescription(desc string) error {
	desc = strings.TrimSpace(desc)
	if len(desc) > MaxDescLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidDesc, MaxDescLength)
	}
	p.description = desc
	return nil
}

func (p *Pack) setSKU(sku string) error {
	if err := ValidateSKU(sku); err != nil {
		return err
	}
	p.sku = NormalizeSKU(sku)
	return nil
}

func (p *Pack) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: must not be negative", ErrInvalidPrice)
	}
	if !price.Equal(price.Round(PriceScale)) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidPrice, PriceScale)
	}
	if price.GreaterThan(maxPrice) {
		return fmt.Errorf("%w: exceeds %s", ErrInvalidPrice, maxPrice)
	}
	p.price = price
	return nil
}

func (p *Pack) setValidity(months int) error {
	if months < MinValidityMonths || months > MaxValidityMonths {
		return fmt.Errorf("%w: got %d", ErrInvalidValidity, months)
	}
	p.validityMonths = months
	return nil
}

// ValidateSKU checks the format of a sku after normalization.
func ValidateSKU(sku string) error {
	s := NormalizeSKU(sku)
	if s == "" || len(s) > MaxSKULength || !skuPattern.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidSKU, sku)
	}
	return nil
}

// NormalizeSKU is the form skus are stored and looked up in.
func NormalizeSKU(sku string) string {
	return strings.ToLower(strings.TrimSpace(sku))
}
