// Package subscription provides HTTP handlers for admin subscription operations.
package subscription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/licensehub/licensehub/internal/application/subscription/usecases"
	"github.com/licensehub/licensehub/internal/interfaces/http/handlers/common"
	"github.com/licensehub/licensehub/internal/shared/id"
	"github.com/licensehub/licensehub/internal/shared/logger"
	"github.com/licensehub/licensehub/internal/shared/utils"
)

// Handler handles admin subscription operations
type Handler struct {
	listUC     listSubscriptionsUseCase
	approveUC  approveSubscriptionUseCase
	assignUC   assignSubscriptionUseCase
	unassignUC unassignSubscriptionUseCase
	eventsUC   getSubscriptionEventsUseCase
	logger     logger.Interface
}

// NewHandler creates a new admin subscription handler
func NewHandler(
	listUC listSubscriptionsUseCase,
	approveUC approveSubscriptionUseCase,
	assignUC assignSubscriptionUseCase,
	unassignUC unassignSubscriptionUseCase,
	eventsUC getSubscriptionEventsUseCase,
	logger logger.Interface,
) *Handler {
	return &Handler{
		listUC:     listUC,
		approveUC:  approveUC,
		assignUC:   assignUC,
		unassignUC: unassignUC,
		eventsUC:   eventsUC,
		logger:     logger,
	}
}

// AssignRequest names the pack by its SID (pack_xxx).
type AssignRequest struct {
	PackID string `json:"pack_id" binding:"required"`
}

// List handles GET /admin/subscriptions
func (h *Handler) List(c *gin.Context) {
	pg := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListSubscriptionsQuery{
		Page:   pg.Page,
		Limit:  pg.PageSize,
		Status: c.Query("status"),
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.Limit)
}

// Approve handles POST /admin/subscriptions/:sid/approve
func (h *Handler) Approve(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixSubscription, "subscription")
	if err != nil {
		common.RespondError(c, err)
		return
	}

	result, err := h.approveUC.Execute(c.Request.Context(), sid)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	h.logger.Infow("subscription approved by admin",
		"subscription_id", sid,
		"admin_id", c.GetUint("user_id"),
		"status", result.Status,
	)
	utils.SuccessResponse(c, http.StatusOK, "Subscription approved successfully", result)
}

// Events handles GET /admin/subscriptions/:sid/events
func (h *Handler) Events(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixSubscription, "subscription")
	if err != nil {
		common.RespondError(c, err)
		return
	}

	result, err := h.eventsUC.Execute(c.Request.Context(), sid)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Assign handles POST /admin/customers/:customer_id/subscription
func (h *Handler) Assign(c *gin.Context) {
	customerID, err := utils.ParseUintParam(c, "customer_id", "customer")
	if err != nil {
		common.RespondError(c, err)
		return
	}

	var req AssignRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for assign subscription", "customer_id", customerID, "error", err)
		common.RespondError(c, err)
		return
	}
	if err := id.ValidatePrefix(req.PackID, id.PrefixPack); err != nil {
		common.RespondError(c, errInvalidPackID)
		return
	}

	result, err := h.assignUC.Execute(c.Request.Context(), usecases.AssignSubscriptionCommand{
		CustomerID: customerID,
		PackSID:    req.PackID,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	h.logger.Infow("subscription assigned by admin",
		"subscription_id", result.ID,
		"customer_id", customerID,
		"pack_id", req.PackID,
		"admin_id", c.GetUint("user_id"),
	)
	utils.SuccessResponse(c, http.StatusOK, "Subscription assigned successfully", result)
}

// Unassign handles DELETE /admin/customers/:customer_id/subscriptions/:sid
func (h *Handler) Unassign(c *gin.Context) {
	customerID, err := utils.ParseUintParam(c, "customer_id", "customer")
	if err != nil {
		common.RespondError(c, err)
		return
	}
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixSubscription, "subscription")
	if err != nil {
		common.RespondError(c, err)
		return
	}

	result, err := h.unassignUC.Execute(c.Request.Context(), usecases.UnassignSubscriptionCommand{
		CustomerID:      customerID,
		SubscriptionSID: sid,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	msg := "Subscription unassigned successfully"
	if !result.Changed {
		msg = "Subscription is not active, nothing to unassign"
	}
	utils.SuccessResponse(c, http.StatusOK, msg, result)
}
