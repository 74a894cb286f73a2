package pricing

import (
	"strings"

	"sellbridge/internal/domain"
)

// Duty-paid customs constants, in the computation currency.
const (
	mpfRate    = 0.003464
	mpfFloor   = 27.23
	mpfCeiling = 528.33

	hmfRate = 0.00125

	programFeeBase = 3.50
	programFeeRate = 0.025
	programFeeCap  = 25.00
)

// dutyPaidMarket is the single destination where the seller remits import
// charges; every other destination ships duty-unpaid.
const dutyPaidMarket = "US"

// RegimeFor returns the delivery regime applicable to a destination country.
func RegimeFor(destinationCountry string) domain.DeliveryRegime {
	if strings.EqualFold(destinationCountry, dutyPaidMarket) {
		return domain.RegimeDutyPaid
	}
	return domain.RegimeDutyUnpaid
}

// ImportChargesFor computes the import-side charges for one regime.
// cif is sourcing cost plus actual carrier cost, in the computation currency.
//
// The processing fee keeps its floor even at near-zero CIF; customs
// brokerages charge the minimum regardless of shipment value.
func ImportChargesFor(regime domain.DeliveryRegime, cif, compositeRate float64, portEntry bool) domain.ImportCharges {
	switch regime {
	case domain.RegimeDutyPaid:
		duty := cif * compositeRate
		mpf := clamp(cif*mpfRate, mpfFloor, mpfCeiling)
		hmf := 0.0
		if portEntry {
			hmf = cif * hmfRate
		}
		program := programFeeBase + cif*programFeeRate
		if program > programFeeCap {
			program = programFeeCap
		}
		return domain.ImportCharges{
			Duty:          duty,
			ProcessingFee: mpf,
			HarborFee:     hmf,
			ProgramFee:    program,
			Total:         duty + mpf + hmf + program,
		}
	default:
		duty := cif * compositeRate
		return domain.ImportCharges{Duty: duty, Total: duty}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
