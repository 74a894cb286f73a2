package port

import (
	"context"

	"sellbridge/internal/domain"
)

// ExchangeRateRepository defines the contract for exchange rate persistence.
type ExchangeRateRepository interface {
	Latest(ctx context.Context) (*domain.ExchangeRate, error)
	Create(ctx context.Context, rate *domain.ExchangeRate) error
}
