package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/licensehub/licensehub/internal/application/subscription/usecases"
	"github.com/licensehub/licensehub/internal/interfaces/http/handlers/common"
	"github.com/licensehub/licensehub/internal/shared/errors"
	"github.com/licensehub/licensehub/internal/shared/logger"
	"github.com/licensehub/licensehub/internal/shared/utils"
)

// SubscriptionHandler serves the customer's own subscription. The customer
// is always taken from the request context, never from the body.
type SubscriptionHandler struct {
	requestUC    requestSubscriptionUseCase
	getCurrentUC getCurrentSubscriptionUseCase
	deactivateUC deactivateSubscriptionUseCase
	historyUC    getSubscriptionHistoryUseCase
	logger       logger.Interface
}

func NewSubscriptionHandler(
	requestUC requestSubscriptionUseCase,
	getCurrentUC getCurrentSubscriptionUseCase,
	deactivateUC deactivateSubscriptionUseCase,
	historyUC getSubscriptionHistoryUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		requestUC:    requestUC,
		getCurrentUC: getCurrentUC,
		deactivateUC: deactivateUC,
		historyUC:    historyUC,
		logger:       logger,
	}
}

type RequestSubscriptionRequest struct {
	SKU string `json:"sku" binding:"required,sku"`
}

// GetCurrent handles GET /customer/subscription
func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	customerID, ok := common.RequireCustomerID(c)
	if !ok {
		return
	}

	result, err := h.getCurrentUC.Execute(c.Request.Context(), customerID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Request handles POST /customer/subscription
func (h *SubscriptionHandler) Request(c *gin.Context) {
	customerID, ok := common.RequireCustomerID(c)
	if !ok {
		return
	}

	var req RequestSubscriptionRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for subscription request", "customer_id", customerID, "error", err)
		common.RespondError(c, err)
		return
	}

	result, err := h.requestUC.Execute(c.Request.Context(), usecases.RequestSubscriptionCommand{
		CustomerID: customerID,
		SKU:        req.SKU,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription request submitted")
}

// Deactivate handles DELETE /customer/subscription
func (h *SubscriptionHandler) Deactivate(c *gin.Context) {
	customerID, ok := common.RequireCustomerID(c)
	if !ok {
		return
	}

	result, err := h.deactivateUC.Execute(c.Request.Context(), customerID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription deactivated successfully", result)
}

// GetHistory handles GET /customer/subscription-history
func (h *SubscriptionHandler) GetHistory(c *gin.Context) {
	customerID, ok := common.RequireCustomerID(c)
	if !ok {
		return
	}

	sort := c.DefaultQuery("sort", "desc")
	if sort != "asc" && sort != "desc" {
		common.RespondError(c, errors.NewValidationError("sort must be asc or desc"))
		return
	}

	pg := utils.ParsePagination(c)
	result, err := h.historyUC.Execute(c.Request.Context(), usecases.GetSubscriptionHistoryQuery{
		CustomerID: customerID,
		Page:       pg.Page,
		Limit:      pg.PageSize,
		Sort:       sort,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.Limit)
}
