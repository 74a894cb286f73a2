package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sellbridge/internal/domain"
	"sellbridge/internal/service"
	"sellbridge/mocks"
)

func queuedJob(t *testing.T) domain.RecalcJob {
	t.Helper()
	input, err := json.Marshal(referenceInput())
	require.NoError(t, err)
	return domain.RecalcJob{
		ID:         uuid.New(),
		ProductRef: "sku-1042",
		Category:   "electronics",
		Input:      input,
		Status:     domain.RecalcJobProcessing,
	}
}

func runWorker(t *testing.T, queueRepo *mocks.MockRecalcQueueRepo, pricingSvc *mocks.MockPricingService) {
	t.Helper()

	worker := service.NewRecalcQueueWorker(queueRepo, pricingSvc, service.RecalcQueueConfig{
		PollInterval: 10 * time.Millisecond,
		Concurrency:  2,
		BatchSize:    5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	worker.Start(ctx)
}

func TestRecalcWorker_ProcessesJob(t *testing.T) {
	queueRepo := new(mocks.MockRecalcQueueRepo)
	pricingSvc := new(mocks.MockPricingService)
	job := queuedJob(t)

	queueRepo.On("ClaimPending", mock.Anything, 5).Return([]domain.RecalcJob{job}, nil).Once()
	queueRepo.On("ClaimPending", mock.Anything, 5).Return([]domain.RecalcJob{}, nil)
	pricingSvc.On("Calculate", mock.Anything, mock.Anything, "electronics").
		Return(&domain.CalculationResult{ListingPrice: 250, Regime: domain.RegimeDutyPaid}, nil)
	queueRepo.On("MarkDone", mock.Anything, job.ID).Return(nil)

	runWorker(t, queueRepo, pricingSvc)

	queueRepo.AssertCalled(t, "MarkDone", mock.Anything, job.ID)
	queueRepo.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecalcWorker_MarksFailedJob(t *testing.T) {
	queueRepo := new(mocks.MockRecalcQueueRepo)
	pricingSvc := new(mocks.MockPricingService)
	job := queuedJob(t)

	queueRepo.On("ClaimPending", mock.Anything, 5).Return([]domain.RecalcJob{job}, nil).Once()
	queueRepo.On("ClaimPending", mock.Anything, 5).Return([]domain.RecalcJob{}, nil)
	pricingSvc.On("Calculate", mock.Anything, mock.Anything, "electronics").
		Return(nil, domain.ErrNoShippingPolicy)
	queueRepo.On("MarkFailed", mock.Anything, job.ID, mock.Anything).Return(nil)

	runWorker(t, queueRepo, pricingSvc)

	queueRepo.AssertCalled(t, "MarkFailed", mock.Anything, job.ID, mock.Anything)
	queueRepo.AssertNotCalled(t, "MarkDone", mock.Anything, mock.Anything)
}

func TestRecalcWorker_MalformedInputFailsWithoutCalculate(t *testing.T) {
	queueRepo := new(mocks.MockRecalcQueueRepo)
	pricingSvc := new(mocks.MockPricingService)
	job := queuedJob(t)
	job.Input = []byte(`{not json`)

	queueRepo.On("ClaimPending", mock.Anything, 5).Return([]domain.RecalcJob{job}, nil).Once()
	queueRepo.On("ClaimPending", mock.Anything, 5).Return([]domain.RecalcJob{}, nil)
	queueRepo.On("MarkFailed", mock.Anything, job.ID, mock.Anything).Return(nil)

	runWorker(t, queueRepo, pricingSvc)

	queueRepo.AssertCalled(t, "MarkFailed", mock.Anything, job.ID, mock.Anything)
	pricingSvc.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything, mock.Anything)
}
