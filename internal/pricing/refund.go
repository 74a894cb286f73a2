package pricing

import "sellbridge/internal/domain"

const (
	// consumptionTaxRate is the home-country input tax rate; the refund on a
	// tax-inclusive amount x is x × rate/(1+rate).
	consumptionTaxRate = 0.10

	// assumedResaleMarkup feeds the refundable-fee estimate with a revenue
	// guess before the real revenue is solved. Known source of refund drift;
	// estimates carry an Approximate flag so callers can label the figure.
	assumedResaleMarkup = 2.5
)

// EstimateRefundableFees approximates the marketplace fees eligible for
// input-tax credit, in the home currency. The revenue guess is the sourcing
// cost scaled by an assumed resale markup; the eligible portion is the
// success fee on that guess.
func EstimateRefundableFees(sourcingCostHome, successFeeRate float64) float64 {
	estimatedRevenueHome := sourcingCostHome * assumedResaleMarkup
	return estimatedRevenueHome * successFeeRate
}

// EstimateRefund computes the consumption-tax refund on sourcing cost plus
// refundable fees, both in home currency. approximate marks refundableFees
// as estimated rather than caller-supplied.
func EstimateRefund(sourcingCost, refundableFees float64, approximate bool) domain.RefundEstimate {
	taxable := sourcingCost + refundableFees
	refund := taxable * consumptionTaxRate / (1 + consumptionTaxRate)
	return domain.RefundEstimate{
		TaxableAmount:  taxable,
		RefundableFees: refundableFees,
		Refund:         refund,
		EffectiveCost:  sourcingCost - refund,
		Approximate:    approximate,
	}
}
