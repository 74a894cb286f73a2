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

type tariffRepo struct {
	db *sqlx.DB
}

// NewTariffRepo creates a new PostgreSQL-backed TariffRepository.
func NewTariffRepo(db *sqlx.DB) port.TariffRepository {
	return &tariffRepo{db: db}
}

func (r *tariffRepo) LoadAll(ctx context.Context) ([]domain.TariffRecord, error) {
	var records []domain.TariffRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT code, description, base_rate, has_trade_remedy, trade_remedy_rate, trade_remedy_origin
		 FROM tariff_records
		 WHERE effective_to IS NULL OR effective_to >= CURRENT_DATE
		 ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("tariffRepo.LoadAll: %w", err)
	}
	return records, nil
}

func (r *tariffRepo) GetByCode(ctx context.Context, code string) (*domain.TariffRecord, error) {
	var record domain.TariffRecord
	err := r.db.GetContext(ctx, &record,
		`SELECT code, description, base_rate, has_trade_remedy, trade_remedy_rate, trade_remedy_origin
		 FROM tariff_records
		 WHERE code = $1 AND (effective_to IS NULL OR effective_to >= CURRENT_DATE)`,
		code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("tariffRepo.GetByCode: %w", err)
	}
	return &record, nil
}
