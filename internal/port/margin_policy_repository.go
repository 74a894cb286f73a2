package port

import (
	"context"

	"sellbridge/internal/domain"
)

// MarginPolicyRepository defines the contract for margin policy data access.
type MarginPolicyRepository interface {
	ListActive(ctx context.Context) ([]domain.MarginPolicy, error)
}
