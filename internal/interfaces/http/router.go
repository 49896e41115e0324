package http

import (
	"github.com/licensehub/licensehub/internal/interfaces/http/handlers/common"
	"github.com/licensehub/licensehub/internal/interfaces/http/middleware"
	"github.com/licensehub/licensehub/internal/interfaces/http/routes"
)

// SetupRoutes installs the global middleware chain and every route.
func (c *Container) SetupRoutes() error {
	if err := common.RegisterValidators(); err != nil {
		return err
	}

	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())
	if c.cfg.Server.RequestTimeout > 0 {
		c.engine.Use(middleware.Timeout(c.cfg.Server.RequestTimeout))
	}

	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)

	routes.SetupCustomerRoutes(c.engine, &routes.CustomerRouteConfig{
		SubscriptionHandler:  c.hdlrs.subscriptionHandler,
		PackHandler:          c.hdlrs.packHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		CustomerMiddleware:   c.customerMiddleware,
		RateLimiter:          c.rateLimiter,
	})

	routes.SetupAdminRoutes(c.engine, &routes.AdminRouteConfig{
		PackHandler:          c.hdlrs.packHandler,
		SubscriptionHandler:  c.hdlrs.adminSubscriptionHandler,
		DashboardHandler:     c.hdlrs.adminDashboardHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	return nil
}
