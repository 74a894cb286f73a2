package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sellbridge/internal/domain"
)

func availableOutcome(regime domain.DeliveryRegime, profit, shipping, duty, margin float64) domain.RegimeOutcome {
	return domain.RegimeOutcome{
		Regime:            regime,
		Available:         true,
		Profit:            profit,
		DisplayedShipping: shipping,
		RealizedMargin:    margin,
		Breakdown:         domain.CostBreakdown{Import: domain.ImportCharges{Duty: duty}},
	}
}

func TestRecommendProfitGap(t *testing.T) {
	// Duty-paid profit exceeds duty-unpaid by 15% of the larger.
	dp := availableOutcome(domain.RegimeDutyPaid, 100, 20, 10, 0.20)
	du := availableOutcome(domain.RegimeDutyUnpaid, 85, 20, 0, 0.20)

	rec := Recommend(dp, du)
	assert.Equal(t, domain.RegimeDutyPaid, rec.Regime)
	assert.Equal(t, domain.ConfidenceHigh, rec.Confidence)
	assert.Equal(t, "profit_gap", rec.Rule)

	// Symmetric case: duty-unpaid wins.
	rec = Recommend(du, dp)
	assert.Equal(t, domain.RegimeDutyUnpaid, rec.Regime)
	assert.Equal(t, domain.ConfidenceHigh, rec.Confidence)
}

func TestRecommendHighShipping(t *testing.T) {
	// Profits within 10%, duty-unpaid shipping above the cutoff.
	dp := availableOutcome(domain.RegimeDutyPaid, 100, 35, 10, 0.20)
	du := availableOutcome(domain.RegimeDutyUnpaid, 95, 35, 0, 0.20)

	rec := Recommend(dp, du)
	assert.Equal(t, domain.RegimeDutyUnpaid, rec.Regime)
	assert.Equal(t, domain.ConfidenceMedium, rec.Confidence)
	assert.Equal(t, "high_shipping", rec.Rule)
}

func TestRecommendHighDuty(t *testing.T) {
	dp := availableOutcome(domain.RegimeDutyPaid, 100, 20, 25, 0.20)
	du := availableOutcome(domain.RegimeDutyUnpaid, 95, 20, 0, 0.20)

	rec := Recommend(dp, du)
	assert.Equal(t, domain.RegimeDutyUnpaid, rec.Regime)
	assert.Equal(t, domain.ConfidenceMedium, rec.Confidence)
	assert.Equal(t, "high_duty", rec.Rule)
}

func TestRecommendLowMargin(t *testing.T) {
	dp := availableOutcome(domain.RegimeDutyPaid, 100, 20, 10, 0.10)
	du := availableOutcome(domain.RegimeDutyUnpaid, 95, 20, 0, 0.10)

	rec := Recommend(dp, du)
	assert.Equal(t, domain.RegimeDutyPaid, rec.Regime)
	assert.Equal(t, domain.ConfidenceMedium, rec.Confidence)
	assert.Equal(t, "low_margin", rec.Rule)
}

func TestRecommendDefault(t *testing.T) {
	dp := availableOutcome(domain.RegimeDutyPaid, 100, 20, 10, 0.20)
	du := availableOutcome(domain.RegimeDutyUnpaid, 95, 20, 0, 0.20)

	rec := Recommend(dp, du)
	assert.Equal(t, domain.RegimeDutyPaid, rec.Regime)
	assert.Equal(t, domain.ConfidenceLow, rec.Confidence)
	assert.Equal(t, "default", rec.Rule)
}

func TestRecommendRuleOrder(t *testing.T) {
	// A qualifying profit gap outranks every later rule even when their
	// conditions also hold.
	dp := availableOutcome(domain.RegimeDutyPaid, 200, 50, 100, 0.05)
	du := availableOutcome(domain.RegimeDutyUnpaid, 100, 50, 0, 0.05)

	rec := Recommend(dp, du)
	assert.Equal(t, "profit_gap", rec.Rule)
	assert.Equal(t, domain.RegimeDutyPaid, rec.Regime)
}
