package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/licensehub/licensehub/internal/interfaces/http/handlers"
	"github.com/licensehub/licensehub/internal/interfaces/http/middleware"
)

// CustomerRouteConfig holds dependencies for customer routes.
type CustomerRouteConfig struct {
	SubscriptionHandler  *handlers.SubscriptionHandler
	PackHandler          *handlers.PackHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	CustomerMiddleware   *middleware.CustomerMiddleware
	// RateLimiter is optional; it needs Redis.
	RateLimiter *middleware.RateLimiter
}

// SetupCustomerRoutes configures the self-service routes. Every route acts on
// the customer resolved from the caller's token.
func SetupCustomerRoutes(engine *gin.Engine, cfg *CustomerRouteConfig) {
	customer := engine.Group("/customer")
	customer.Use(cfg.AuthMiddleware.RequireAuth())
	customer.Use(cfg.PermissionMiddleware.Authorize())
	customer.Use(cfg.CustomerMiddleware.RequireCustomer())
	{
		requestHandlers := []gin.HandlerFunc{cfg.SubscriptionHandler.Request}
		if cfg.RateLimiter != nil {
			requestHandlers = append([]gin.HandlerFunc{cfg.RateLimiter.Limit()}, requestHandlers...)
		}

		customer.GET("/subscription", cfg.SubscriptionHandler.GetCurrent)
		customer.POST("/subscription", requestHandlers...)
		customer.DELETE("/subscription", cfg.SubscriptionHandler.Deactivate)
		customer.GET("/subscription-history", cfg.SubscriptionHandler.GetHistory)

		customer.GET("/packs", cfg.PackHandler.ListAvailablePacks)
	}
}
