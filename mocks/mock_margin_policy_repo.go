package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sellbridge/internal/domain"
)

// MockMarginPolicyRepo is a mock implementation of port.MarginPolicyRepository.
type MockMarginPolicyRepo struct {
	mock.Mock
}

func (m *MockMarginPolicyRepo) ListActive(ctx context.Context) ([]domain.MarginPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarginPolicy), args.Error(1)
}
