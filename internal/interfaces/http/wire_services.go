package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/licensehub/licensehub/internal/infrastructure/auth"
	"github.com/licensehub/licensehub/internal/infrastructure/config"
	"github.com/licensehub/licensehub/internal/infrastructure/lock"
	"github.com/licensehub/licensehub/internal/infrastructure/permission"
	"github.com/licensehub/licensehub/internal/infrastructure/scheduler"
	shareddb "github.com/licensehub/licensehub/internal/shared/db"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Locks, Auth
// ============================================================

// initInfrastructure connects Redis when enabled and builds repositories,
// the per-customer locker, the transaction manager and the auth services.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL, log)

	c.locker = newLocker(cfg, c.redis, log)
	c.txMgr = shareddb.NewTransactionManager(c.db)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer)
	enforcer, err := permission.NewEnforcer(permission.DefaultPolicies(), log)
	if err != nil {
		c.closeRedis()
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	c.enforcer = enforcer

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// newLocker uses a Redis lock when several instances may share the database,
// and an in-process mutex otherwise.
func newLocker(cfg *config.Config, client *redis.Client, log logger.Interface) lock.CustomerLocker {
	if client != nil {
		return lock.NewRedisLocker(client, cfg.Redis.LockTTL, cfg.Subscription.LockTimeout, log)
	}
	return lock.NewKeyedMutexWithWait(cfg.Subscription.LockTimeout)
}

// ============================================================
// Section 3: Expiry sweeper
// ============================================================

// initScheduler registers the expiry sweep. The scheduler is started by the
// server command, not here.
func (c *Container) initScheduler() error {
	schedulerManager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler manager: %w", err)
	}
	if err := schedulerManager.RegisterExpiryJob(c.ucs.expireSubscriptionsUC, c.cfg.Subscription.ExpirySweepInterval); err != nil {
		return fmt.Errorf("failed to register expiry job: %w", err)
	}
	c.schedulerManager = schedulerManager
	return nil
}
