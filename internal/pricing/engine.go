package pricing

import (
	"fmt"

	"sellbridge/internal/domain"
)

// Calculate solves the listing price that yields the target margin for one
// shipment, under both delivery regimes, and recommends one. It is a pure
// function of its arguments: reference data is read-only and no I/O occurs.
func Calculate(
	input domain.CalculationInput,
	policies []domain.ShippingPolicy,
	marginPolicy domain.MarginPolicy,
	feeSchedule domain.CategoryFeeSchedule,
	rate domain.ExchangeRate,
	tariffs *TariffTable,
) (*domain.CalculationResult, error) {
	steps := make([]string, 0, 16)

	weight := NormalizeWeight(input.ActualWeight, input.Length, input.Width, input.Height)
	steps = append(steps, fmt.Sprintf("billable weight %.2fkg (actual %.2f, volumetric %.2f)", weight.Billable, weight.Actual, weight.Volumetric))

	safeRate := rate.SafeRate()
	if safeRate <= 0 {
		return nil, fmt.Errorf("safe rate %.4f: %w", safeRate, domain.ErrNoExchangeRate)
	}
	sourcingCost := input.SourcingCost / safeRate
	steps = append(steps, fmt.Sprintf("sourcing cost %.2f at safe rate %.4f", sourcingCost, safeRate))

	// Price-band selection needs a revenue guess before the solve; the
	// assumed resale markup stands in for it.
	estimatedPrice := sourcingCost * assumedResaleMarkup
	zone, policyName, err := ResolveZone(input.DestinationCountry, weight.Billable, estimatedPrice, policies)
	if err != nil {
		return nil, err
	}
	steps = append(steps, fmt.Sprintf("policy %q zone %s: carrier %.2f, displayed %.2f", policyName, zone.ZoneCode, zone.ActualCost, zone.DisplayedCost))

	tariff := tariffs.Resolve(input.TariffCode, input.OriginCountry)
	if tariff.UsedFallback {
		steps = append(steps, fmt.Sprintf("tariff code %q not classified, fallback rate %.1f%%", input.TariffCode, tariff.Rate*100))
	} else {
		steps = append(steps, fmt.Sprintf("tariff %s rate %.2f%% (%s)", tariff.Code, tariff.Rate*100, tariff.Description))
	}

	variableRate := VariableRate(feeSchedule, input.StoreTier)
	if variableRate+marginPolicy.TargetMargin >= 1 {
		return nil, fmt.Errorf("variable rate %.3f + target margin %.3f: %w", variableRate, marginPolicy.TargetMargin, domain.ErrInfeasibleMargin)
	}

	refundableFees := input.RefundableFeeAllowance
	approximate := false
	if refundableFees == 0 {
		refundableFees = EstimateRefundableFees(input.SourcingCost, feeSchedule.SuccessFeeRate)
		approximate = true
	}
	refund := EstimateRefund(input.SourcingCost, refundableFees, approximate)

	primary := RegimeFor(input.DestinationCountry)

	dutyPaid, dpErr := regimeOutcome(domain.RegimeDutyPaid, input, zone, tariff, feeSchedule, marginPolicy, weight, sourcingCost, safeRate, refund.Refund)
	dutyUnpaid, duErr := regimeOutcome(domain.RegimeDutyUnpaid, input, zone, tariff, feeSchedule, marginPolicy, weight, sourcingCost, safeRate, refund.Refund)

	primaryOutcome, primaryErr := dutyPaid, dpErr
	if primary == domain.RegimeDutyUnpaid {
		primaryOutcome, primaryErr = dutyUnpaid, duErr
	}
	if primaryErr != nil {
		return nil, primaryErr
	}
	steps = append(steps, fmt.Sprintf("%s revenue %.2f, listing price %.2f, margin %.2f%%", primaryOutcome.Regime, primaryOutcome.TotalRevenue, primaryOutcome.ListingPrice, primaryOutcome.RealizedMargin*100))

	rec := recommend(dutyPaid, dutyUnpaid)
	steps = append(steps, fmt.Sprintf("recommendation %s (%s): %s", rec.Regime, rec.Confidence, rec.Reason))

	return &domain.CalculationResult{
		Regime:               primaryOutcome.Regime,
		ListingPrice:         primaryOutcome.ListingPrice,
		DisplayedShipping:    primaryOutcome.DisplayedShipping,
		HandlingFee:          primaryOutcome.HandlingFee,
		TotalRevenue:         primaryOutcome.TotalRevenue,
		Profit:               primaryOutcome.Profit,
		ProfitHome:           primaryOutcome.ProfitHome,
		ProfitWithRefund:     primaryOutcome.ProfitWithRefund,
		ProfitHomeWithRefund: primaryOutcome.ProfitWithRefund * safeRate,
		RealizedMargin:       primaryOutcome.RealizedMargin,
		TargetMargin:         marginPolicy.TargetMargin,
		Breakdown:            primaryOutcome.Breakdown,
		Weight:               weight,
		Tariff:               tariff,
		UsedFallbackTariff:   tariff.UsedFallback,
		Refund:               refund,
		PolicyName:           policyName,
		ZoneCode:             zone.ZoneCode,
		ExchangeRateUsed:     safeRate,
		MarginPolicy:         marginPolicy,
		DutyPaid:             &dutyPaid,
		DutyUnpaid:           &dutyUnpaid,
		Recommendation:       rec,
		Steps:                steps,
	}, nil
}

// regimeOutcome runs the regime-specific half of the pipeline. A non-nil
// error leaves the outcome unavailable with the reason recorded, so the
// comparator can still reason about the other regime.
func regimeOutcome(
	regime domain.DeliveryRegime,
	input domain.CalculationInput,
	zone domain.ShippingZone,
	tariff domain.ResolvedTariff,
	feeSchedule domain.CategoryFeeSchedule,
	marginPolicy domain.MarginPolicy,
	weight domain.WeightFigures,
	sourcingCost, safeRate, refundHome float64,
) (domain.RegimeOutcome, error) {
	out := domain.RegimeOutcome{Regime: regime}

	handling := zone.DDUHandlingFee
	if regime == domain.RegimeDutyPaid {
		if zone.DDPHandlingFee == nil {
			err := fmt.Errorf("zone %s: duty-paid delivery not offered: %w", zone.ZoneCode, domain.ErrUnsupportedDestination)
			out.UnavailableReason = err.Error()
			return out, err
		}
		handling = *zone.DDPHandlingFee
	}

	cif := sourcingCost + zone.ActualCost
	charges := ImportChargesFor(regime, cif, tariff.Rate, weight.PortEntry)

	// Under the duty-unpaid regime the buyer settles import charges at
	// delivery; they are reported but never enter the seller's cost base.
	sellerImport := 0.0
	if regime == domain.RegimeDutyPaid {
		sellerImport = charges.Total
	}

	fixedCosts := sourcingCost + zone.ActualCost + sellerImport + feeSchedule.ListingFee
	variableRate := VariableRate(feeSchedule, input.StoreTier)

	revenue, err := SolveRevenue(fixedCosts, variableRate, marginPolicy.TargetMargin)
	if err != nil {
		out.UnavailableReason = err.Error()
		return out, err
	}
	price, err := DeriveListingPrice(revenue, zone.DisplayedCost, handling)
	if err != nil {
		err = fmt.Errorf("revenue %.2f: %w", revenue, err)
		out.UnavailableReason = err.Error()
		return out, err
	}

	// Post-rounding revenue; fees are recomputed against it, with the
	// category cap applied now that revenue is known.
	solvedRevenue := price + zone.DisplayedCost + handling
	successFee := SuccessFee(solvedRevenue, feeSchedule, input.StoreTier)
	paymentFee := solvedRevenue * paymentRate
	advertisingFee := solvedRevenue * advertisingRate
	fxBufferCost := solvedRevenue * fxBufferRate
	crossBorderFee := solvedRevenue * crossBorderRate

	totalCosts := fixedCosts + successFee + paymentFee + advertisingFee + fxBufferCost + crossBorderFee
	profit := solvedRevenue - totalCosts

	out.Available = true
	out.ListingPrice = price
	out.DisplayedShipping = zone.DisplayedCost
	out.HandlingFee = handling
	out.TotalRevenue = solvedRevenue
	out.Profit = profit
	out.ProfitHome = profit * safeRate
	out.ProfitWithRefund = profit + refundHome/safeRate
	out.RealizedMargin = profit / solvedRevenue
	out.Breakdown = domain.CostBreakdown{
		SourcingCost:   sourcingCost,
		CarrierCost:    zone.ActualCost,
		HandlingFee:    handling,
		Import:         charges,
		ListingFee:     feeSchedule.ListingFee,
		SuccessFee:     successFee,
		PaymentFee:     paymentFee,
		AdvertisingFee: advertisingFee,
		FXBufferCost:   fxBufferCost,
		CrossBorderFee: crossBorderFee,
	}
	return out, nil
}

// recommend applies the rule ladder, short-circuiting when one regime could
// not be computed at all.
func recommend(dutyPaid, dutyUnpaid domain.RegimeOutcome) domain.Recommendation {
	switch {
	case dutyPaid.Available && !dutyUnpaid.Available:
		return domain.Recommendation{Regime: domain.RegimeDutyPaid, Confidence: domain.ConfidenceHigh, Rule: "only_available", Reason: dutyUnpaid.UnavailableReason}
	case !dutyPaid.Available && dutyUnpaid.Available:
		return domain.Recommendation{Regime: domain.RegimeDutyUnpaid, Confidence: domain.ConfidenceHigh, Rule: "only_available", Reason: dutyPaid.UnavailableReason}
	}
	return Recommend(dutyPaid, dutyUnpaid)
}
