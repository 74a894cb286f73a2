package pricing

import (
	"math"

	"sellbridge/internal/domain"
)

// Variable-cost rates, each a linear fraction of total revenue.
const (
	paymentRate     = 0.02
	advertisingRate = 0.02
	fxBufferRate    = 0.03
	crossBorderRate = 0.015
)

// NetSuccessRate is the category success-fee rate after the store-tier
// discount, floored at zero.
func NetSuccessRate(schedule domain.CategoryFeeSchedule, tier domain.StoreTier) float64 {
	rate := schedule.SuccessFeeRate - domain.StoreTierDiscounts[tier]
	if rate < 0 {
		return 0
	}
	return rate
}

// VariableRate is the total revenue-proportional cost rate for a listing.
func VariableRate(schedule domain.CategoryFeeSchedule, tier domain.StoreTier) float64 {
	return NetSuccessRate(schedule, tier) + paymentRate + advertisingRate + fxBufferRate + crossBorderRate
}

// SolveRevenue back-solves the total revenue satisfying
// revenue × (1 − variableRate − targetMargin) = fixedCosts, in closed form.
func SolveRevenue(fixedCosts, variableRate, targetMargin float64) (float64, error) {
	denom := 1 - variableRate - targetMargin
	if denom <= 0 {
		return 0, domain.ErrInfeasibleMargin
	}
	return fixedCosts / denom, nil
}

// DeriveListingPrice converts solved revenue into the displayed item price:
// revenue minus displayed shipping and handling, rounded to the nearest $5.
// The rounding makes the realized margin drift slightly from the target,
// bounded by 5/revenue.
func DeriveListingPrice(revenue, displayedShipping, handlingFee float64) (float64, error) {
	price := roundTo5(revenue - displayedShipping - handlingFee)
	if price <= 0 {
		return 0, domain.ErrInfeasiblePrice
	}
	return price, nil
}

func roundTo5(x float64) float64 {
	return math.Round(x/5) * 5
}

// SuccessFee recomputes the success fee against solved revenue, applying the
// category cap. The solver uses the rate form; the cap is a fixed ceiling
// that can only be checked once revenue is known.
func SuccessFee(revenue float64, schedule domain.CategoryFeeSchedule, tier domain.StoreTier) float64 {
	fee := revenue * NetSuccessRate(schedule, tier)
	if schedule.FeeCap != nil && fee > *schedule.FeeCap {
		fee = *schedule.FeeCap
	}
	return fee
}
