package port

import (
	"context"

	"sellbridge/internal/domain"
)

// TariffRepository defines the contract for tariff classification data access.
type TariffRepository interface {
	LoadAll(ctx context.Context) ([]domain.TariffRecord, error)
	GetByCode(ctx context.Context, code string) (*domain.TariffRecord, error)
}
