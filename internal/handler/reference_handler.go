package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sellbridge/internal/domain"
	"sellbridge/internal/port"
	"sellbridge/internal/pricing"
)

// ReferenceHandler exposes read access to the reference data the solver runs
// on, plus admin maintenance of the exchange rate.
type ReferenceHandler struct {
	tariffRepo port.TariffRepository
	policyRepo port.ShippingPolicyRepository
	rateRepo   port.ExchangeRateRepository
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(
	tariffRepo port.TariffRepository,
	policyRepo port.ShippingPolicyRepository,
	rateRepo port.ExchangeRateRepository,
) *ReferenceHandler {
	return &ReferenceHandler{tariffRepo: tariffRepo, policyRepo: policyRepo, rateRepo: rateRepo}
}

// GetTariff handles GET /api/v1/reference/tariffs/:code
// @Summary      Resolve a tariff code
// @Description  Resolves a tariff code (with prefix fallback) to its composite duty rate for the given origin country
// @Tags         reference
// @Produce      json
// @Param        code path string true "Tariff classification code"
// @Param        origin query string false "Origin country (ISO 3166-1 alpha-2)"
// @Success      200 {object} APIResponse{data=domain.ResolvedTariff}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /reference/tariffs/{code} [get]
func (h *ReferenceHandler) GetTariff(c *gin.Context) {
	code := c.Param("code")
	origin := c.Query("origin")

	records, err := h.tariffRepo.LoadAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	resolved := pricing.NewTariffTable(records).Resolve(code, origin)
	RespondOK(c, resolved)
}

// ListPolicies handles GET /api/v1/reference/policies
// @Summary      List shipping policies
// @Description  Returns the active shipping policies with their zone rate cards
// @Tags         reference
// @Produce      json
// @Success      200 {object} APIResponse{data=[]domain.ShippingPolicy}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /reference/policies [get]
func (h *ReferenceHandler) ListPolicies(c *gin.Context) {
	policies, err := h.policyRepo.ListActive(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, policies)
}

// GetExchangeRate handles GET /api/v1/reference/exchange-rate
// @Summary      Current exchange rate
// @Description  Returns the most recently captured spot rate and FX buffer
// @Tags         reference
// @Produce      json
// @Success      200 {object} APIResponse{data=domain.ExchangeRate}
// @Failure      503 {object} APIResponse
// @Security     BearerAuth
// @Router       /reference/exchange-rate [get]
func (h *ReferenceHandler) GetExchangeRate(c *gin.Context) {
	rate, err := h.rateRepo.Latest(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rate)
}

// UpdateExchangeRateRequest is the request body for capturing a new rate.
type UpdateExchangeRateRequest struct {
	Spot      float64 `json:"spot" binding:"required,gt=0"`
	BufferPct float64 `json:"buffer_pct" binding:"gte=0,lt=1"`
}

// UpdateExchangeRate handles PUT /api/v1/reference/exchange-rate
// @Summary      Capture a new exchange rate
// @Description  Records a new spot rate; subsequent calculations use it immediately (admin only)
// @Tags         reference
// @Accept       json
// @Produce      json
// @Param        request body UpdateExchangeRateRequest true "Spot rate and buffer"
// @Success      201 {object} APIResponse{data=domain.ExchangeRate}
// @Failure      400 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Security     BearerAuth
// @Router       /reference/exchange-rate [put]
func (h *ReferenceHandler) UpdateExchangeRate(c *gin.Context) {
	var req UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	rate := &domain.ExchangeRate{
		ID:         uuid.New(),
		Spot:       req.Spot,
		BufferPct:  req.BufferPct,
		CapturedAt: time.Now().UTC(),
	}
	if err := h.rateRepo.Create(c.Request.Context(), rate); err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rate)
}
