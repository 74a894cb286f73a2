package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sellbridge/internal/domain"
	"sellbridge/internal/port"
)

type calculationRepo struct {
	db *sqlx.DB
}

// NewCalculationRepo creates a new PostgreSQL-backed CalculationRepository.
func NewCalculationRepo(db *sqlx.DB) port.CalculationRepository {
	return &calculationRepo{db: db}
}

func (r *calculationRepo) Create(ctx context.Context, record *domain.CalculationRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO calculation_records
		   (id, destination_country, tariff_code, store_tier, category, status, error_code, listing_price, input, result, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		record.ID, record.DestinationCountry, record.TariffCode, record.StoreTier, record.Category,
		record.Status, record.ErrorCode, record.ListingPrice, record.Input, record.Result, record.DurationMS)
	if err != nil {
		return fmt.Errorf("calculationRepo.Create: %w", err)
	}
	return nil
}

func (r *calculationRepo) List(ctx context.Context, offset, limit int) ([]domain.CalculationRecord, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM calculation_records`); err != nil {
		return nil, 0, fmt.Errorf("calculationRepo.List count: %w", err)
	}

	var records []domain.CalculationRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM calculation_records
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("calculationRepo.List: %w", err)
	}
	return records, total, nil
}
