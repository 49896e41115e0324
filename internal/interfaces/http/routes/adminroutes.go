package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/licensehub/licensehub/internal/interfaces/http/handlers"
	"github.com/licensehub/licensehub/internal/interfaces/http/handlers/admin"
	adminSubscriptionHandlers "github.com/licensehub/licensehub/internal/interfaces/http/handlers/admin/subscription"
	"github.com/licensehub/licensehub/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds all handler dependencies for admin routes.
type AdminRouteConfig struct {
	PackHandler          *handlers.PackHandler
	SubscriptionHandler  *adminSubscriptionHandlers.Handler
	DashboardHandler     *admin.AdminDashboardHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures all admin routes under /admin.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	adminGroup := engine.Group("/admin")
	adminGroup.Use(cfg.AuthMiddleware.RequireAuth())
	adminGroup.Use(cfg.PermissionMiddleware.Authorize())

	packs := adminGroup.Group("/packs")
	{
		packs.GET("", cfg.PackHandler.ListPacks)
		packs.POST("", cfg.PackHandler.CreatePack)
		packs.GET("/:sid", cfg.PackHandler.GetPack)
		packs.PATCH("/:sid", cfg.PackHandler.UpdatePack)
		packs.DELETE("/:sid", cfg.PackHandler.DeletePack)
	}

	subscriptions := adminGroup.Group("/subscriptions")
	{
		subscriptions.GET("", cfg.SubscriptionHandler.List)
		subscriptions.POST("/:sid/approve", cfg.SubscriptionHandler.Approve)
		subscriptions.GET("/:sid/events", cfg.SubscriptionHandler.Events)
	}

	customers := adminGroup.Group("/customers/:customer_id")
	{
		customers.POST("/subscription", cfg.SubscriptionHandler.Assign)
		customers.DELETE("/subscriptions/:sid", cfg.SubscriptionHandler.Unassign)
	}

	adminGroup.GET("/dashboard", cfg.DashboardHandler.GetDashboard)
}
