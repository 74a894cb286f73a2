package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sellbridge/internal/domain"
	"sellbridge/internal/handler"
	"sellbridge/mocks"
)

func newReferenceHandler() (*handler.ReferenceHandler, *mocks.MockTariffRepo, *mocks.MockShippingPolicyRepo, *mocks.MockExchangeRateRepo) {
	tariffRepo := new(mocks.MockTariffRepo)
	policyRepo := new(mocks.MockShippingPolicyRepo)
	rateRepo := new(mocks.MockExchangeRateRepo)
	h := handler.NewReferenceHandler(tariffRepo, policyRepo, rateRepo)
	return h, tariffRepo, policyRepo, rateRepo
}

func TestGetTariff_ExactMatch(t *testing.T) {
	h, tariffRepo, _, _ := newReferenceHandler()
	tariffRepo.On("LoadAll", mock.Anything).Return([]domain.TariffRecord{
		{Code: "8518302000", Description: "headphones", BaseRate: 0.049},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reference/tariffs/8518302000?origin=JP", http.NoBody)
	c.Params = gin.Params{{Key: "code", Value: "8518302000"}}
	h.GetTariff(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data domain.ResolvedTariff `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "8518302000", resp.Data.Code)
	assert.False(t, resp.Data.UsedFallback)
	assert.InDelta(t, 0.049, resp.Data.Rate, 1e-9)
}

func TestGetTariff_UnknownCodeUsesFallback(t *testing.T) {
	h, tariffRepo, _, _ := newReferenceHandler()
	tariffRepo.On("LoadAll", mock.Anything).Return([]domain.TariffRecord{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reference/tariffs/9999999999", http.NoBody)
	c.Params = gin.Params{{Key: "code", Value: "9999999999"}}
	h.GetTariff(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data domain.ResolvedTariff `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.UsedFallback)
	assert.InDelta(t, 0.06, resp.Data.Rate, 1e-9)
}

func TestListPolicies(t *testing.T) {
	h, _, policyRepo, _ := newReferenceHandler()
	policyRepo.On("ListActive", mock.Anything).Return([]domain.ShippingPolicy{
		{Name: "light parcels", IsActive: true},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reference/policies", http.NoBody)
	h.ListPolicies(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []domain.ShippingPolicy `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "light parcels", resp.Data[0].Name)
}

func TestGetExchangeRate_NoneAvailable(t *testing.T) {
	h, _, _, rateRepo := newReferenceHandler()
	rateRepo.On("Latest", mock.Anything).Return(nil, domain.ErrNoExchangeRate)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reference/exchange-rate", http.NoBody)
	h.GetExchangeRate(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUpdateExchangeRate_CreatesRate(t *testing.T) {
	h, _, _, rateRepo := newReferenceHandler()
	rateRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.ExchangeRate) bool {
		return r.ID != uuid.Nil && r.Spot == 152.4 && r.BufferPct == 0.03 &&
			time.Since(r.CapturedAt) < time.Minute
	})).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{"spot": 152.4, "buffer_pct": 0.03})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/v1/reference/exchange-rate", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.UpdateExchangeRate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	rateRepo.AssertExpectations(t)
}

func TestUpdateExchangeRate_RejectsNonPositiveSpot(t *testing.T) {
	h, _, _, rateRepo := newReferenceHandler()

	body, _ := json.Marshal(map[string]interface{}{"spot": 0, "buffer_pct": 0.03})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/v1/reference/exchange-rate", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.UpdateExchangeRate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	rateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
