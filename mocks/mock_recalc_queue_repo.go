package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sellbridge/internal/domain"
)

// MockRecalcQueueRepo is a mock implementation of port.RecalcQueueRepository.
type MockRecalcQueueRepo struct {
	mock.Mock
}

func (m *MockRecalcQueueRepo) Enqueue(ctx context.Context, job *domain.RecalcJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockRecalcQueueRepo) ClaimPending(ctx context.Context, limit int) ([]domain.RecalcJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecalcJob), args.Error(1)
}

func (m *MockRecalcQueueRepo) MarkDone(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecalcQueueRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}
