package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sellbridge/internal/domain"
)

// MockCalculationRepo is a mock implementation of port.CalculationRepository.
type MockCalculationRepo struct {
	mock.Mock
}

func (m *MockCalculationRepo) Create(ctx context.Context, record *domain.CalculationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCalculationRepo) List(ctx context.Context, offset, limit int) ([]domain.CalculationRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CalculationRecord), args.Int(1), args.Error(2)
}
