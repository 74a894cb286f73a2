package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sellbridge/internal/domain"
	"sellbridge/internal/port"
)

type recalcQueueRepo struct {
	db *sqlx.DB
}

// NewRecalcQueueRepo creates a new PostgreSQL-backed RecalcQueueRepository.
func NewRecalcQueueRepo(db *sqlx.DB) port.RecalcQueueRepository {
	return &recalcQueueRepo{db: db}
}

func (r *recalcQueueRepo) Enqueue(ctx context.Context, job *domain.RecalcJob) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recalc_queue (id, product_ref, category, input, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		job.ID, job.ProductRef, job.Category, job.Input, domain.RecalcJobPending)
	if err != nil {
		return fmt.Errorf("recalcQueueRepo.Enqueue: %w", err)
	}
	return nil
}

// ClaimPending flips up to limit pending jobs to processing in one statement;
// SKIP LOCKED keeps concurrent workers from claiming the same rows.
func (r *recalcQueueRepo) ClaimPending(ctx context.Context, limit int) ([]domain.RecalcJob, error) {
	var jobs []domain.RecalcJob
	err := r.db.SelectContext(ctx, &jobs,
		`UPDATE recalc_queue
		 SET status = 'processing', attempts = attempts + 1, updated_at = NOW()
		 WHERE id IN (
		   SELECT id FROM recalc_queue
		   WHERE status = 'pending'
		   ORDER BY created_at
		   LIMIT $1
		   FOR UPDATE SKIP LOCKED
		 )
		 RETURNING id, product_ref, category, input, status, attempts, last_error, created_at, updated_at`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("recalcQueueRepo.ClaimPending: %w", err)
	}
	return jobs, nil
}

func (r *recalcQueueRepo) MarkDone(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE recalc_queue SET status = 'done', last_error = '', updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("recalcQueueRepo.MarkDone: %w", err)
	}
	return nil
}

// MarkFailed requeues the job until its attempts are exhausted.
func (r *recalcQueueRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE recalc_queue
		 SET status = CASE WHEN attempts >= $2 THEN 'failed' ELSE 'pending' END,
		     last_error = $3, updated_at = NOW()
		 WHERE id = $1`,
		id, maxQueueAttempts, reason)
	if err != nil {
		return fmt.Errorf("recalcQueueRepo.MarkFailed: %w", err)
	}
	return nil
}

// maxQueueAttempts bounds retries for a failing job.
const maxQueueAttempts = 3
