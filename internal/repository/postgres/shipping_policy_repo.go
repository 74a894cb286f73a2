package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sellbridge/internal/domain"
	"sellbridge/internal/port"
)

type shippingPolicyRepo struct {
	db *sqlx.DB
}

// NewShippingPolicyRepo creates a new PostgreSQL-backed ShippingPolicyRepository.
func NewShippingPolicyRepo(db *sqlx.DB) port.ShippingPolicyRepository {
	return &shippingPolicyRepo{db: db}
}

func (r *shippingPolicyRepo) ListActive(ctx context.Context) ([]domain.ShippingPolicy, error) {
	var policies []domain.ShippingPolicy
	err := r.db.SelectContext(ctx, &policies,
		`SELECT id, name, min_weight, max_weight, min_price, max_price, is_active, created_at, updated_at
		 FROM shipping_policies
		 WHERE is_active = TRUE
		 ORDER BY min_weight, min_price`)
	if err != nil {
		return nil, fmt.Errorf("shippingPolicyRepo.ListActive: %w", err)
	}
	if len(policies) == 0 {
		return policies, nil
	}

	ids := make([]uuid.UUID, 0, len(policies))
	for i := range policies {
		ids = append(ids, policies[i].ID)
	}
	query, args, err := sqlx.In(
		`SELECT id, policy_id, zone_code, actual_cost, displayed_cost, ddp_handling_fee, ddu_handling_fee, sort_order
		 FROM shipping_zones
		 WHERE policy_id IN (?)
		 ORDER BY policy_id, sort_order`, ids)
	if err != nil {
		return nil, fmt.Errorf("shippingPolicyRepo.ListActive zones: %w", err)
	}
	var zones []domain.ShippingZone
	if err := r.db.SelectContext(ctx, &zones, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("shippingPolicyRepo.ListActive zones: %w", err)
	}

	byPolicy := make(map[uuid.UUID][]domain.ShippingZone, len(policies))
	for i := range zones {
		byPolicy[zones[i].PolicyID] = append(byPolicy[zones[i].PolicyID], zones[i])
	}
	for i := range policies {
		policies[i].Zones = byPolicy[policies[i].ID]
	}
	return policies, nil
}
