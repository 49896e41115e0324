package pack

import (
	"context"

	"github.com/licensehub/licensehub/internal/shared/query"
)

// Repository persists packs. Lookups return (nil, nil) on a miss so callers
// can produce their own not-found error.
type Repository interface {
	Create(ctx context.Context, p *Pack) error
	Update(ctx context.Context, p *Pack) error
	// GetByID also returns soft-deleted packs, for historical display.
	GetByID(ctx context.Context, id uint) (*Pack, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Pack, error)
	// GetBySID and GetBySKU only see packs that are not deleted.
	GetBySID(ctx context.Context, sid string) (*Pack, error)
	GetBySKU(ctx context.Context, sku string) (*Pack, error)
	ExistsBySKU(ctx context.Context, sku string, excludeID uint) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Pack, int64, error)
}

type ListFilter struct {
	query.BaseFilter
	ExcludeDeleted bool
}
