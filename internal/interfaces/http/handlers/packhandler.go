package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/licensehub/licensehub/internal/application/pack/usecases"
	"github.com/licensehub/licensehub/internal/interfaces/http/handlers/common"
	"github.com/licensehub/licensehub/internal/shared/id"
	"github.com/licensehub/licensehub/internal/shared/logger"
	"github.com/licensehub/licensehub/internal/shared/utils"
)

// PackHandler serves the pack catalog. Admin routes manage it; customers
// only see the live packs.
type PackHandler struct {
	createPackUC createPackUseCase
	updatePackUC updatePackUseCase
	deletePackUC deletePackUseCase
	getPackUC    getPackUseCase
	listPacksUC  listPacksUseCase
	logger       logger.Interface
}

func NewPackHandler(
	createPackUC createPackUseCase,
	updatePackUC updatePackUseCase,
	deletePackUC deletePackUseCase,
	getPackUC getPackUseCase,
	listPacksUC listPacksUseCase,
	logger logger.Interface,
) *PackHandler {
	return &PackHandler{
		createPackUC: createPackUC,
		updatePackUC: updatePackUC,
		deletePackUC: deletePackUC,
		getPackUC:    getPackUC,
		listPacksUC:  listPacksUC,
		logger:       logger,
	}
}

type CreatePackRequest struct {
	Name           string           `json:"name" binding:"required,max=100"`
	Description    string           `json:"description" binding:"max=1000"`
	SKU            string           `json:"sku" binding:"required,sku"`
	Price          *decimal.Decimal `json:"price" binding:"required"`
	ValidityMonths int              `json:"validity_months" binding:"required,min=1,max=12"`
}

// UpdatePackRequest is a partial update; absent fields keep their value.
type UpdatePackRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=100"`
	Description    *string          `json:"description" binding:"omitempty,max=1000"`
	SKU            *string          `json:"sku" binding:"omitempty,sku"`
	Price          *decimal.Decimal `json:"price"`
	ValidityMonths *int             `json:"validity_months" binding:"omitempty,min=1,max=12"`
}

// CreatePack handles POST /admin/packs
func (h *PackHandler) CreatePack(c *gin.Context) {
	var req CreatePackRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create pack", "error", err)
		common.RespondError(c, err)
		return
	}

	result, err := h.createPackUC.Execute(c.Request.Context(), usecases.CreatePackCommand{
		Name:           req.Name,
		Description:    req.Description,
		SKU:            req.SKU,
		Price:          *req.Price,
		ValidityMonths: req.ValidityMonths,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Pack created successfully")
}

// GetPack handles GET /admin/packs/:sid
func (h *PackHandler) GetPack(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixPack, "pack")
	if err != nil {
		common.RespondError(c, err)
		return
	}

	result, err := h.getPackUC.Execute(c.Request.Context(), sid)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdatePack handles PATCH /admin/packs/:sid
func (h *PackHandler) UpdatePack(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixPack, "pack")
	if err != nil {
		common.RespondError(c, err)
		return
	}

	var req UpdatePackRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update pack", "pack_id", sid, "error", err)
		common.RespondError(c, err)
		return
	}

	result, err := h.updatePackUC.Execute(c.Request.Context(), usecases.UpdatePackCommand{
		SID:            sid,
		Name:           req.Name,
		Description:    req.Description,
		SKU:            req.SKU,
		Price:          req.Price,
		ValidityMonths: req.ValidityMonths,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pack updated successfully", result)
}

// DeletePack handles DELETE /admin/packs/:sid
func (h *PackHandler) DeletePack(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixPack, "pack")
	if err != nil {
		common.RespondError(c, err)
		return
	}

	if err := h.deletePackUC.Execute(c.Request.Context(), sid); err != nil {
		common.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pack deleted successfully", nil)
}

// ListPacks handles GET /admin/packs
func (h *PackHandler) ListPacks(c *gin.Context) {
	includeDeleted, _ := strconv.ParseBool(c.Query("include_deleted"))
	h.list(c, includeDeleted)
}

// ListAvailablePacks handles GET /customer/packs
func (h *PackHandler) ListAvailablePacks(c *gin.Context) {
	h.list(c, false)
}

func (h *PackHandler) list(c *gin.Context, includeDeleted bool) {
	pg := utils.ParsePagination(c)

	result, err := h.listPacksUC.Execute(c.Request.Context(), usecases.ListPacksQuery{
		Page:           pg.Page,
		Limit:          pg.PageSize,
		IncludeDeleted: includeDeleted,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Packs, result.Total, result.Page, result.Limit)
}
