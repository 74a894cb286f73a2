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

type exchangeRateRepo struct {
	db *sqlx.DB
}

// NewExchangeRateRepo creates a new PostgreSQL-backed ExchangeRateRepository.
func NewExchangeRateRepo(db *sqlx.DB) port.ExchangeRateRepository {
	return &exchangeRateRepo{db: db}
}

func (r *exchangeRateRepo) Latest(ctx context.Context) (*domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	err := r.db.GetContext(ctx, &rate,
		`SELECT id, spot, buffer_pct, captured_at
		 FROM exchange_rates
		 ORDER BY captured_at DESC
		 LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoExchangeRate
	}
	if err != nil {
		return nil, fmt.Errorf("exchangeRateRepo.Latest: %w", err)
	}
	return &rate, nil
}

func (r *exchangeRateRepo) Create(ctx context.Context, rate *domain.ExchangeRate) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO exchange_rates (id, spot, buffer_pct, captured_at)
		 VALUES ($1, $2, $3, $4)`,
		rate.ID, rate.Spot, rate.BufferPct, rate.CapturedAt)
	if err != nil {
		return fmt.Errorf("exchangeRateRepo.Create: %w", err)
	}
	return nil
}
