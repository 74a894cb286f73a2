package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sellbridge/internal/domain"
)

// MockCategoryFeeRepo is a mock implementation of port.CategoryFeeRepository.
type MockCategoryFeeRepo struct {
	mock.Mock
}

func (m *MockCategoryFeeRepo) GetByCategory(ctx context.Context, category string) (*domain.CategoryFeeSchedule, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryFeeSchedule), args.Error(1)
}
