package http

import (
	"time"

	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/domain/customer"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	"github.com/licensehub/licensehub/internal/infrastructure/cache"
	"github.com/licensehub/licensehub/internal/infrastructure/repository"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	packRepo         pack.Repository
	subscriptionRepo subscription.Repository
	eventRepo        subscription.EventRepository
	customerRepo     customer.Repository
}

// newRepositories creates all repositories. Pack reads go through an LRU
// cache bounded by catalog.cache_size and catalog.cache_ttl.
func newRepositories(db *gorm.DB, cacheSize int, cacheTTL time.Duration, log logger.Interface) *repositories {
	return &repositories{
		packRepo:         cache.NewCachedPackRepository(repository.NewPackRepository(db, log), cacheSize, cacheTTL, log),
		subscriptionRepo: repository.NewSubscriptionRepository(db, log),
		eventRepo:        repository.NewSubscriptionEventRepository(db, log),
		customerRepo:     repository.NewCustomerRepository(db, log),
	}
}
