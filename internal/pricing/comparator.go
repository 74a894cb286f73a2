package pricing

import (
	"fmt"
	"math"

	"sellbridge/internal/domain"
)

// Comparator thresholds. Business policy, not derived from the cost model.
const (
	profitGapShare     = 0.10
	highShippingCutoff = 30.0
	highDutyCutoff     = 20.0
	lowMarginCutoff    = 0.15
)

// comparisonRule is one step of the recommendation ladder. Rules run in
// slice order, first match wins; the last rule must always match.
type comparisonRule struct {
	name string
	eval func(dutyPaid, dutyUnpaid domain.RegimeOutcome) (domain.Recommendation, bool)
}

var comparisonRules = []comparisonRule{
	{
		// A large profit gap dominates every other signal.
		name: "profit_gap",
		eval: func(dp, du domain.RegimeOutcome) (domain.Recommendation, bool) {
			larger := math.Max(math.Abs(dp.Profit), math.Abs(du.Profit))
			if larger == 0 || math.Abs(dp.Profit-du.Profit) <= larger*profitGapShare {
				return domain.Recommendation{}, false
			}
			winner := domain.RegimeDutyPaid
			if du.Profit > dp.Profit {
				winner = domain.RegimeDutyUnpaid
			}
			return domain.Recommendation{
				Regime:     winner,
				Confidence: domain.ConfidenceHigh,
				Reason:     fmt.Sprintf("profit gap %.2f exceeds %.0f%% of the larger profit", math.Abs(dp.Profit-du.Profit), profitGapShare*100),
			}, true
		},
	},
	{
		// Expensive shipping makes buyer-paid duty psychologically acceptable.
		name: "high_shipping",
		eval: func(_, du domain.RegimeOutcome) (domain.Recommendation, bool) {
			if du.DisplayedShipping <= highShippingCutoff {
				return domain.Recommendation{}, false
			}
			return domain.Recommendation{
				Regime:     domain.RegimeDutyUnpaid,
				Confidence: domain.ConfidenceMedium,
				Reason:     fmt.Sprintf("duty-unpaid shipping %.2f exceeds %.2f", du.DisplayedShipping, highShippingCutoff),
			}, true
		},
	},
	{
		name: "high_duty",
		eval: func(dp, _ domain.RegimeOutcome) (domain.Recommendation, bool) {
			if dp.Breakdown.Import.Duty <= highDutyCutoff {
				return domain.Recommendation{}, false
			}
			return domain.Recommendation{
				Regime:     domain.RegimeDutyUnpaid,
				Confidence: domain.ConfidenceMedium,
				Reason:     fmt.Sprintf("duty %.2f exceeds %.2f", dp.Breakdown.Import.Duty, highDutyCutoff),
			}, true
		},
	},
	{
		// Thin margins favor the regime that guarantees profit capture.
		name: "low_margin",
		eval: func(dp, _ domain.RegimeOutcome) (domain.Recommendation, bool) {
			if dp.RealizedMargin >= lowMarginCutoff {
				return domain.Recommendation{}, false
			}
			return domain.Recommendation{
				Regime:     domain.RegimeDutyPaid,
				Confidence: domain.ConfidenceMedium,
				Reason:     fmt.Sprintf("realized margin %.1f%% below %.0f%%", dp.RealizedMargin*100, lowMarginCutoff*100),
			}, true
		},
	},
	{
		name: "default",
		eval: func(_, _ domain.RegimeOutcome) (domain.Recommendation, bool) {
			return domain.Recommendation{
				Regime:     domain.RegimeDutyPaid,
				Confidence: domain.ConfidenceLow,
				Reason:     "no rule matched; all-inclusive pricing by default",
			}, true
		},
	},
}

// Recommend runs the ordered rule ladder over the two regime outcomes.
func Recommend(dutyPaid, dutyUnpaid domain.RegimeOutcome) domain.Recommendation {
	for _, rule := range comparisonRules {
		if rec, ok := rule.eval(dutyPaid, dutyUnpaid); ok {
			rec.Rule = rule.name
			return rec
		}
	}
	// Unreachable: the default rule always matches.
	return domain.Recommendation{Regime: domain.RegimeDutyPaid, Confidence: domain.ConfidenceLow, Rule: "default"}
}
