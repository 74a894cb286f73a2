package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sellbridge/internal/domain"
	"sellbridge/internal/port"
)

type marginPolicyRepo struct {
	db *sqlx.DB
}

// NewMarginPolicyRepo creates a new PostgreSQL-backed MarginPolicyRepository.
func NewMarginPolicyRepo(db *sqlx.DB) port.MarginPolicyRepository {
	return &marginPolicyRepo{db: db}
}

func (r *marginPolicyRepo) ListActive(ctx context.Context) ([]domain.MarginPolicy, error) {
	var policies []domain.MarginPolicy
	err := r.db.SelectContext(ctx, &policies,
		`SELECT id, category, country, target_margin, min_margin, min_profit, max_margin, is_default, is_active
		 FROM margin_policies
		 WHERE is_active = TRUE
		 ORDER BY is_default, category NULLS LAST, country NULLS LAST`)
	if err != nil {
		return nil, fmt.Errorf("marginPolicyRepo.ListActive: %w", err)
	}
	return policies, nil
}
