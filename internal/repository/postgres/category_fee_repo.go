package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sellbridge/internal/domain"
	"sellbridge/internal/port"
)

// defaultFeeCategory is the schedule used for categories with no row of
// their own.
const defaultFeeCategory = "general"

type categoryFeeRepo struct {
	db *sqlx.DB
}

// NewCategoryFeeRepo creates a new PostgreSQL-backed CategoryFeeRepository.
func NewCategoryFeeRepo(db *sqlx.DB) port.CategoryFeeRepository {
	return &categoryFeeRepo{db: db}
}

func (r *categoryFeeRepo) GetByCategory(ctx context.Context, category string) (*domain.CategoryFeeSchedule, error) {
	schedule, err := r.get(ctx, category)
	if errors.Is(err, domain.ErrNotFound) && category != defaultFeeCategory {
		return r.get(ctx, defaultFeeCategory)
	}
	return schedule, err
}

func (r *categoryFeeRepo) get(ctx context.Context, category string) (*domain.CategoryFeeSchedule, error) {
	var schedule domain.CategoryFeeSchedule
	err := r.db.GetContext(ctx, &schedule,
		`SELECT category, success_fee_rate, fee_cap, listing_fee
		 FROM category_fee_schedules
		 WHERE category = $1`,
		category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("categoryFeeRepo.get: %w", err)
	}
	return &schedule, nil
}
