package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sellbridge/internal/domain"
)

// MockPricingService is a mock implementation of service.PricingService.
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Calculate(ctx context.Context, input domain.CalculationInput, category string) (*domain.CalculationResult, error) {
	args := m.Called(ctx, input, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationResult), args.Error(1)
}

func (m *MockPricingService) ListHistory(ctx context.Context, offset, limit int) ([]domain.CalculationRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CalculationRecord), args.Int(1), args.Error(2)
}
