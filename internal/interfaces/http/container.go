package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	subscriptionUsecases "github.com/licensehub/licensehub/internal/application/subscription/usecases"
	"github.com/licensehub/licensehub/internal/infrastructure/auth"
	"github.com/licensehub/licensehub/internal/infrastructure/config"
	"github.com/licensehub/licensehub/internal/infrastructure/lock"
	"github.com/licensehub/licensehub/internal/infrastructure/permission"
	"github.com/licensehub/licensehub/internal/infrastructure/scheduler"
	"github.com/licensehub/licensehub/internal/interfaces/http/middleware"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	shareddb "github.com/licensehub/licensehub/internal/shared/db"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases,
// handlers and the expiry scheduler, and owns their shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Shared services
	jwtSvc   *auth.JWTService
	enforcer *permission.Enforcer
	locker   lock.CustomerLocker
	txMgr    *shareddb.TransactionManager
	clock    biztime.Clock

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	customerMiddleware   *middleware.CustomerMiddleware
	rateLimiter          *middleware.RateLimiter

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer wires every component on top of an open database.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		clock:  biztime.SystemClock{},
	}

	// Section 1: Infrastructure - Redis, Repositories, Locks, Auth
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Expiry sweeper
	if err := c.initScheduler(); err != nil {
		c.closeRedis()
		return nil, err
	}

	// Section 4: Handlers and middlewares
	c.initHandlers()

	return c, nil
}

// Engine returns the Gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Scheduler returns the expiry scheduler; the caller decides when to start it.
func (c *Container) Scheduler() *scheduler.SchedulerManager {
	return c.schedulerManager
}

// ExpireUseCase is exposed for the one-shot sweep command.
func (c *Container) ExpireUseCase() *subscriptionUsecases.ExpireSubscriptionsUseCase {
	return c.ucs.expireSubscriptionsUC
}

// Shutdown stops the scheduler and releases the Redis client. The database
// handle belongs to the caller.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil && c.schedulerManager.IsStarted() {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}
	c.closeRedis()
}

func (c *Container) closeRedis() {
	if c.redis == nil {
		return
	}
	if err := c.redis.Close(); err != nil {
		c.log.Warnw("failed to close redis client", "error", err)
	}
	c.redis = nil
}
