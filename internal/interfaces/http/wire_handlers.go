package http

import (
	"context"
	"fmt"

	"github.com/licensehub/licensehub/internal/interfaces/http/handlers"
	adminHandlers "github.com/licensehub/licensehub/internal/interfaces/http/handlers/admin"
	adminSubscriptionHandlers "github.com/licensehub/licensehub/internal/interfaces/http/handlers/admin/subscription"
	"github.com/licensehub/licensehub/internal/interfaces/http/middleware"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler *handlers.HealthHandler

	// Customer facing
	packHandler         *handlers.PackHandler
	subscriptionHandler *handlers.SubscriptionHandler

	// Admin
	adminSubscriptionHandler *adminSubscriptionHandlers.Handler
	adminDashboardHandler    *adminHandlers.AdminDashboardHandler
}

// initHandlers builds handlers and the request-scoped middlewares.
func (c *Container) initHandlers() {
	ucs := c.ucs
	log := c.log

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	c.customerMiddleware = middleware.NewCustomerMiddleware(c.repos.customerRepo, log)
	if c.redis != nil {
		c.rateLimiter = middleware.NewRateLimiter(
			c.redis, c.cfg.Subscription.RequestRateLimit, c.cfg.Subscription.RequestRateWindow, log,
		)
	}

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(c.healthChecks(), log),
		packHandler: handlers.NewPackHandler(
			ucs.createPackUC, ucs.updatePackUC, ucs.deletePackUC, ucs.getPackUC, ucs.listPacksUC, log,
		),
		subscriptionHandler: handlers.NewSubscriptionHandler(
			ucs.requestSubscriptionUC, ucs.getCurrentSubscriptionUC, ucs.deactivateSubscriptionUC, ucs.getHistoryUC, log,
		),
		adminSubscriptionHandler: adminSubscriptionHandlers.NewHandler(
			ucs.listSubscriptionsUC, ucs.approveSubscriptionUC, ucs.assignSubscriptionUC,
			ucs.unassignSubscriptionUC, ucs.getEventsUC, log,
		),
		adminDashboardHandler: adminHandlers.NewAdminDashboardHandler(ucs.getAdminDashboardUC, log),
	}
}

// healthChecks probes the database and, when configured, Redis.
func (c *Container) healthChecks() map[string]handlers.HealthCheckFunc {
	checks := map[string]handlers.HealthCheckFunc{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return fmt.Errorf("failed to get underlying sql.DB: %w", err)
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		client := c.redis
		checks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	}
	return checks
}
