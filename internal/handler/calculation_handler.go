package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sellbridge/internal/domain"
	"sellbridge/internal/service"
)

// CalculationHandler handles pricing calculation endpoints.
type CalculationHandler struct {
	pricingService service.PricingService
	exportService  service.ExportService
}

// NewCalculationHandler creates a new CalculationHandler.
func NewCalculationHandler(pricingService service.PricingService, exportService service.ExportService) *CalculationHandler {
	return &CalculationHandler{pricingService: pricingService, exportService: exportService}
}

// CalculationRequest is the request body for a pricing calculation.
type CalculationRequest struct {
	domain.CalculationInput
	Category string `json:"category"`
}

// Calculate handles POST /api/v1/calculations
// @Summary      Solve a listing price
// @Description  Runs the reverse price solver for a product and destination, returning the recommended listing price, cost breakdown, and regime comparison
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Param        request body CalculationRequest true "Product, destination, and store details"
// @Success      200 {object} APIResponse{data=domain.CalculationResult}
// @Failure      400 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Security     BearerAuth
// @Router       /calculations [post]
func (h *CalculationHandler) Calculate(c *gin.Context) {
	var req CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.pricingService.Calculate(c.Request.Context(), req.CalculationInput, req.Category)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// List handles GET /api/v1/calculations
// @Summary      List calculation history
// @Description  Returns the audit log of past calculations, newest first
// @Tags         calculations
// @Produce      json
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.CalculationRecord,meta=PagMeta}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /calculations [get]
func (h *CalculationHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	records, total, err := h.pricingService.ListHistory(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Export handles POST /api/v1/calculations/export
// @Summary      Export calculation history
// @Description  Writes the full calculation history as CSV to object storage and returns a presigned download URL
// @Tags         calculations
// @Produce      json
// @Success      200 {object} APIResponse{data=service.ExportResult}
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /calculations/export [post]
func (h *CalculationHandler) Export(c *gin.Context) {
	result, err := h.exportService.ExportHistory(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
