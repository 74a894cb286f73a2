package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"sellbridge/internal/domain"
	"sellbridge/internal/port"
	"sellbridge/internal/pricing"
)

// PricingService orchestrates the pricing engine: it fetches reference data,
// selects the applicable margin policy, runs the engine, and appends an
// audit record for every outcome.
type PricingService interface {
	Calculate(ctx context.Context, input domain.CalculationInput, category string) (*domain.CalculationResult, error)
	ListHistory(ctx context.Context, offset, limit int) ([]domain.CalculationRecord, int, error)
}

type pricingService struct {
	tariffRepo port.TariffRepository
	policyRepo port.ShippingPolicyRepository
	feeRepo    port.CategoryFeeRepository
	marginRepo port.MarginPolicyRepository
	rateRepo   port.ExchangeRateRepository
	calcRepo   port.CalculationRepository
}

// NewPricingService creates a new PricingService implementation.
func NewPricingService(
	tariffRepo port.TariffRepository,
	policyRepo port.ShippingPolicyRepository,
	feeRepo port.CategoryFeeRepository,
	marginRepo port.MarginPolicyRepository,
	rateRepo port.ExchangeRateRepository,
	calcRepo port.CalculationRepository,
) PricingService {
	return &pricingService{
		tariffRepo: tariffRepo,
		policyRepo: policyRepo,
		feeRepo:    feeRepo,
		marginRepo: marginRepo,
		rateRepo:   rateRepo,
		calcRepo:   calcRepo,
	}
}

func (s *pricingService) Calculate(ctx context.Context, input domain.CalculationInput, category string) (*domain.CalculationResult, error) {
	// Reference-data failures surface before the engine runs and are not
	// audited; only engine outcomes are.
	tariffs, err := s.tariffRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tariff table: %w", err)
	}
	policies, err := s.policyRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading shipping policies: %w", err)
	}
	feeSchedule, err := s.feeRepo.GetByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("loading fee schedule for %q: %w", category, err)
	}
	marginPolicies, err := s.marginRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading margin policies: %w", err)
	}
	rate, err := s.rateRepo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading exchange rate: %w", err)
	}

	marginPolicy := selectMarginPolicy(marginPolicies, category, input.DestinationCountry)
	table := pricing.NewTariffTable(tariffs)

	started := time.Now()
	result, calcErr := pricing.Calculate(input, policies, marginPolicy, *feeSchedule, *rate, table)
	duration := time.Since(started)

	s.audit(ctx, input, category, result, calcErr, duration)
	return result, calcErr
}

func (s *pricingService) ListHistory(ctx context.Context, offset, limit int) ([]domain.CalculationRecord, int, error) {
	return s.calcRepo.List(ctx, offset, limit)
}

// audit appends a calculation record. Audit failures are logged, never
// propagated: they must not mask the calculation outcome.
func (s *pricingService) audit(ctx context.Context, input domain.CalculationInput, category string, result *domain.CalculationResult, calcErr error, duration time.Duration) {
	record := &domain.CalculationRecord{
		ID:                 uuid.New(),
		DestinationCountry: strings.ToUpper(input.DestinationCountry),
		TariffCode:         input.TariffCode,
		StoreTier:          input.StoreTier,
		Category:           category,
		Status:             domain.CalculationStatusSucceeded,
		DurationMS:         duration.Milliseconds(),
	}
	if raw, err := json.Marshal(input); err == nil {
		record.Input = raw
	}
	if calcErr != nil {
		record.Status = domain.CalculationStatusFailed
		record.ErrorCode = errorCode(calcErr)
	} else {
		record.ListingPrice = &result.ListingPrice
		if raw, err := json.Marshal(result); err == nil {
			record.Result = raw
		}
	}
	if err := s.calcRepo.Create(ctx, record); err != nil {
		log.Printf("pricingService: audit write failed: %v", err)
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedDestination):
		return "unsupported_destination"
	case errors.Is(err, domain.ErrNoShippingPolicy):
		return "no_shipping_policy"
	case errors.Is(err, domain.ErrInfeasibleMargin):
		return "infeasible_margin"
	case errors.Is(err, domain.ErrInfeasiblePrice):
		return "infeasible_price"
	case errors.Is(err, domain.ErrNoExchangeRate):
		return "no_exchange_rate"
	default:
		return "internal"
	}
}

// defaultMarginPolicy applies when no configured policy matches.
var defaultMarginPolicy = domain.MarginPolicy{
	TargetMargin: 0.25,
	MinMargin:    0.10,
	MinProfit:    10,
	MaxMargin:    0.60,
	IsDefault:    true,
	IsActive:     true,
}

// selectMarginPolicy picks the most specific active policy: category and
// country, then category, then country, then the configured default.
func selectMarginPolicy(policies []domain.MarginPolicy, category, country string) domain.MarginPolicy {
	var best *domain.MarginPolicy
	bestScore := -1
	for i := range policies {
		p := &policies[i]
		score := 0
		if p.Category != nil {
			if !strings.EqualFold(*p.Category, category) {
				continue
			}
			score += 2
		}
		if p.Country != nil {
			if !strings.EqualFold(*p.Country, country) {
				continue
			}
			score++
		}
		if score == 0 && !p.IsDefault {
			continue
		}
		if score > bestScore {
			best = p
			bestScore = score
		}
	}
	if best == nil {
		return defaultMarginPolicy
	}
	return *best
}
