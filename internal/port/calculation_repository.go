package port

import (
	"context"

	"sellbridge/internal/domain"
)

// CalculationRepository defines the contract for the append-only calculation
// audit log.
type CalculationRepository interface {
	Create(ctx context.Context, record *domain.CalculationRecord) error
	List(ctx context.Context, offset, limit int) ([]domain.CalculationRecord, int, error)
}
