package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sellbridge/internal/domain"
)

// MockExchangeRateRepo is a mock implementation of port.ExchangeRateRepository.
type MockExchangeRateRepo struct {
	mock.Mock
}

func (m *MockExchangeRateRepo) Latest(ctx context.Context) (*domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepo) Create(ctx context.Context, rate *domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}
