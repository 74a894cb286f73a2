package port

import (
	"context"

	"github.com/google/uuid"

	"sellbridge/internal/domain"
)

// RecalcQueueRepository defines the contract for the price-recalculation
// queue. ClaimPending atomically moves up to limit pending jobs to
// processing so concurrent workers never claim the same job twice.
type RecalcQueueRepository interface {
	Enqueue(ctx context.Context, job *domain.RecalcJob) error
	ClaimPending(ctx context.Context, limit int) ([]domain.RecalcJob, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}
