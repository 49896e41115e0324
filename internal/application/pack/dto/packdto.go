package dto

import (
	"time"

	"github.com/licensehub/licensehub/internal/domain/pack"
)

// PackDTO is the external view of a pack. Price is a decimal string.
type PackDTO struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	SKU            string     `json:"sku"`
	Price          string     `json:"price"`
	ValidityMonths int        `json:"validity_months"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

type ListPacksResponse struct {
	Packs []*PackDTO `json:"packs"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// SeedResult reports what a seed run did, by sku.
type SeedResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

func ToPackDTO(p *pack.Pack) *PackDTO {
	if p == nil {
		return nil
	}
	return &PackDTO{
		ID:             p.SID(),
		Name:           p.Name(),
		Description:    p.Description(),
		SKU:            p.SKU(),
		Price:          p.Price().StringFixed(pack.PriceScale),
		ValidityMonths: p.ValidityMonths(),
		Status:         p.Status().String(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
		DeletedAt:      p.DeletedAt(),
	}
}

func ToPackDTOs(packs []*pack.Pack) []*PackDTO {
	out := make([]*PackDTO, 0, len(packs))
	for _, p := range packs {
		out = append(out, ToPackDTO(p))
	}
	return out
}
