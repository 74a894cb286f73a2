package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sellbridge/internal/domain"
	"sellbridge/internal/handler"
	"sellbridge/internal/service"
	"sellbridge/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCalculationHandler() (*handler.CalculationHandler, *mocks.MockPricingService, *mocks.MockExportService) {
	pricingSvc := new(mocks.MockPricingService)
	exportSvc := new(mocks.MockExportService)
	h := handler.NewCalculationHandler(pricingSvc, exportSvc)
	return h, pricingSvc, exportSvc
}

func calculationBody() map[string]interface{} {
	return map[string]interface{}{
		"sourcing_cost":       15000,
		"actual_weight":       1.0,
		"length":              20,
		"width":               15,
		"height":              10,
		"destination_country": "US",
		"origin_country":      "JP",
		"tariff_code":         "8518302000",
		"store_tier":          "premium",
		"category":            "electronics",
	}
}

func postJSON(t *testing.T, h gin.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return w
}

func TestCalculate_Success(t *testing.T) {
	h, pricingSvc, _ := newCalculationHandler()

	result := &domain.CalculationResult{
		Regime:       domain.RegimeDutyPaid,
		ListingPrice: 250,
		TotalRevenue: 280,
	}
	pricingSvc.On("Calculate", mock.Anything, mock.MatchedBy(func(in domain.CalculationInput) bool {
		return in.DestinationCountry == "US" && in.TariffCode == "8518302000"
	}), "electronics").Return(result, nil)

	w := postJSON(t, h.Calculate, "/api/v1/calculations", calculationBody())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                     `json:"success"`
		Data    domain.CalculationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 250.0, resp.Data.ListingPrice)
	pricingSvc.AssertExpectations(t)
}

func TestCalculate_MissingRequiredFields(t *testing.T) {
	h, pricingSvc, _ := newCalculationHandler()

	body := calculationBody()
	delete(body, "destination_country")

	w := postJSON(t, h.Calculate, "/api/v1/calculations", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	pricingSvc.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCalculate_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unsupported destination", domain.ErrUnsupportedDestination, http.StatusBadRequest, "UNSUPPORTED_DESTINATION"},
		{"no shipping policy", domain.ErrNoShippingPolicy, http.StatusUnprocessableEntity, "NO_SHIPPING_POLICY"},
		{"infeasible margin", domain.ErrInfeasibleMargin, http.StatusUnprocessableEntity, "INFEASIBLE_MARGIN"},
		{"infeasible price", domain.ErrInfeasiblePrice, http.StatusUnprocessableEntity, "INFEASIBLE_PRICE"},
		{"no exchange rate", domain.ErrNoExchangeRate, http.StatusServiceUnavailable, "NO_EXCHANGE_RATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, pricingSvc, _ := newCalculationHandler()
			pricingSvc.On("Calculate", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := postJSON(t, h.Calculate, "/api/v1/calculations", calculationBody())

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestList_Paginated(t *testing.T) {
	h, pricingSvc, _ := newCalculationHandler()

	records := []domain.CalculationRecord{
		{DestinationCountry: "US", Status: domain.CalculationStatusSucceeded},
	}
	pricingSvc.On("ListHistory", mock.Anything, 40, 20).Return(records, 57, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/calculations?offset=40&limit=20", http.NoBody)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Meta    struct {
			Total  int `json:"total"`
			Offset int `json:"offset"`
			Limit  int `json:"limit"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 57, resp.Meta.Total)
	assert.Equal(t, 40, resp.Meta.Offset)
}

func TestList_ClampsPagination(t *testing.T) {
	h, pricingSvc, _ := newCalculationHandler()
	pricingSvc.On("ListHistory", mock.Anything, 0, 20).Return([]domain.CalculationRecord{}, 0, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/calculations?offset=-5&limit=5000", http.NoBody)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	pricingSvc.AssertCalled(t, "ListHistory", mock.Anything, 0, 20)
}

func TestExport_Success(t *testing.T) {
	h, _, exportSvc := newCalculationHandler()

	exportSvc.On("ExportHistory", mock.Anything).Return(&service.ExportResult{
		Bucket: "exports",
		Key:    "calculations/calculation_history_2025-01-14.csv",
		URL:    "https://signed.example/x",
		Rows:   42,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/calculations/export", http.NoBody)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    service.ExportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 42, resp.Data.Rows)
	assert.Equal(t, "https://signed.example/x", resp.Data.URL)
}

func TestExport_UploadFailure(t *testing.T) {
	h, _, exportSvc := newCalculationHandler()
	exportSvc.On("ExportHistory", mock.Anything).
		Return(nil, errors.Join(domain.ErrUploadFailed, errors.New("connection reset")))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/calculations/export", http.NoBody)
	h.Export(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
