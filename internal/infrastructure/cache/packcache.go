package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/shared/db"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

const (
	defaultPackCacheSize = 256
	defaultPackCacheTTL  = 30 * time.Second
)

// CachedPackRepository is a read-through cache in front of a pack.Repository.
// Single-pack lookups are cached; lists always hit storage. Reads inside a
// transaction bypass the cache so uncommitted rows never get stored.
//
// Updates invalidate only this process's entries. Other instances serve their
// copy until the ttl runs out, so callers that act on a pack re-read it
// inside their transaction.
type CachedPackRepository struct {
	next   pack.Repository
	cache  *expirable.LRU[string, *pack.Pack]
	group  singleflight.Group
	gen    atomic.Uint64
	logger logger.Interface
}

func NewCachedPackRepository(next pack.Repository, size int, ttl time.Duration, log logger.Interface) *CachedPackRepository {
	if size <= 0 {
		size = defaultPackCacheSize
	}
	if ttl <= 0 {
		ttl = defaultPackCacheTTL
	}
	return &CachedPackRepository{
		next:   next,
		cache:  expirable.NewLRU[string, *pack.Pack](size, nil, ttl),
		logger: log,
	}
}

func idKey(id uint) string     { return fmt.Sprintf("id:%d", id) }
func sidKey(sid string) string { return "sid:" + sid }
func skuKey(sku string) string { return "sku:" + pack.NormalizeSKU(sku) }

func (r *CachedPackRepository) Create(ctx context.Context, p *pack.Pack) error {
	return r.next.Create(ctx, p)
}

func (r *CachedPackRepository) Update(ctx context.Context, p *pack.Pack) error {
	r.gen.Add(1)
	err := r.next.Update(ctx, p)
	r.invalidate(p.ID())
	return err
}

func (r *CachedPackRepository) GetByID(ctx context.Context, id uint) (*pack.Pack, error) {
	return r.load(ctx, idKey(id), func() (*pack.Pack, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *CachedPackRepository) GetBySID(ctx context.Context, sid string) (*pack.Pack, error) {
	return r.load(ctx, sidKey(sid), func() (*pack.Pack, error) {
		return r.next.GetBySID(ctx, sid)
	})
}

func (r *CachedPackRepository) GetBySKU(ctx context.Context, sku string) (*pack.Pack, error) {
	return r.load(ctx, skuKey(sku), func() (*pack.Pack, error) {
		return r.next.GetBySKU(ctx, sku)
	})
}

func (r *CachedPackRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*pack.Pack, error) {
	result := make(map[uint]*pack.Pack, len(ids))
	var missing []uint
	for _, id := range ids {
		if p, ok := r.cache.Get(idKey(id)); ok && !db.InTransaction(ctx) {
			result[id] = p.Clone()
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return result, nil
	}

	gen := r.gen.Load()
	loaded, err := r.next.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, p := range loaded {
		r.store(ctx, gen, idKey(id), p)
		result[id] = p
	}
	return result, nil
}

func (r *CachedPackRepository) ExistsBySKU(ctx context.Context, sku string, excludeID uint) (bool, error) {
	return r.next.ExistsBySKU(ctx, sku, excludeID)
}

func (r *CachedPackRepository) List(ctx context.Context, filter pack.ListFilter) ([]*pack.Pack, int64, error) {
	return r.next.List(ctx, filter)
}

func (r *CachedPackRepository) load(ctx context.Context, key string, fetch func() (*pack.Pack, error)) (*pack.Pack, error) {
	if db.InTransaction(ctx) {
		return fetch()
	}
	if p, ok := r.cache.Get(key); ok {
		return p.Clone(), nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		gen := r.gen.Load()
		p, err := fetch()
		if err != nil || p == nil {
			return p, err
		}
		r.store(ctx, gen, key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	p, _ := v.(*pack.Pack)
	if p == nil {
		return nil, nil
	}
	return p.Clone(), nil
}

// store skips the write when a catalog update happened after the load
// started, since the loaded row may predate it.
func (r *CachedPackRepository) store(ctx context.Context, gen uint64, key string, p *pack.Pack) {
	if db.InTransaction(ctx) || r.gen.Load() != gen {
		return
	}
	r.cache.Add(key, p.Clone())
}

func (r *CachedPackRepository) invalidate(id uint) {
	removed := 0
	for _, key := range r.cache.Keys() {
		if p, ok := r.cache.Peek(key); ok && p.ID() == id {
			r.cache.Remove(key)
			removed++
		}
	}
	r.logger.Debugw("pack cache invalidated", "pack_id", id, "entries", removed)
}

// Len is the number of cached entries.
func (r *CachedPackRepository) Len() int {
	return r.cache.Len()
}
