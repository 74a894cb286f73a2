package port

import (
	"context"

	"sellbridge/internal/domain"
)

// CategoryFeeRepository defines the contract for marketplace fee schedules.
// GetByCategory falls back to the default schedule for unknown categories.
type CategoryFeeRepository interface {
	GetByCategory(ctx context.Context, category string) (*domain.CategoryFeeSchedule, error)
}
