package port

import (
	"context"

	"sellbridge/internal/domain"
)

// ShippingPolicyRepository defines the contract for shipping policy data
// access. ListActive returns policies with their zones populated, ordered by
// weight band.
type ShippingPolicyRepository interface {
	ListActive(ctx context.Context) ([]domain.ShippingPolicy, error)
}
