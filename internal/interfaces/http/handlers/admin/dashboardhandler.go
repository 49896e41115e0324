package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/licensehub/licensehub/internal/application/admin/dto"
	"github.com/licensehub/licensehub/internal/interfaces/http/handlers/common"
	"github.com/licensehub/licensehub/internal/shared/logger"
	"github.com/licensehub/licensehub/internal/shared/utils"
)

type getAdminDashboardUseCase interface {
	Execute(ctx context.Context) (*dto.AdminDashboardResponse, error)
}

// AdminDashboardHandler handles the admin dashboard endpoint.
type AdminDashboardHandler struct {
	dashboardUC getAdminDashboardUseCase
	logger      logger.Interface
}

// NewAdminDashboardHandler creates a new AdminDashboardHandler.
func NewAdminDashboardHandler(
	dashboardUC getAdminDashboardUseCase,
	logger logger.Interface,
) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

// GetDashboard handles GET /admin/dashboard
func (h *AdminDashboardHandler) GetDashboard(c *gin.Context) {
	result, err := h.dashboardUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get admin dashboard", "error", err)
		common.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
