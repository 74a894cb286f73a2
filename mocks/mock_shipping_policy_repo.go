package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sellbridge/internal/domain"
)

// MockShippingPolicyRepo is a mock implementation of port.ShippingPolicyRepository.
type MockShippingPolicyRepo struct {
	mock.Mock
}

func (m *MockShippingPolicyRepo) ListActive(ctx context.Context) ([]domain.ShippingPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShippingPolicy), args.Error(1)
}
