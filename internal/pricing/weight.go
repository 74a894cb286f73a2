package pricing

import "sellbridge/internal/domain"

const (
	// volumetricDivisor is the standard air-freight divisor for cm³ → kg.
	volumetricDivisor = 5000

	// Shipments above either bound clear customs as port entries rather
	// than air parcels.
	portEntryWeightKg  = 10
	portEntryVolumeCm3 = 100000
)

// NormalizeWeight derives the carrier-billable weight for a package.
// Dimensions are centimeters, weights kilograms.
func NormalizeWeight(actual, length, width, height float64) domain.WeightFigures {
	volume := length * width * height
	volumetric := volume / volumetricDivisor
	billable := actual
	if volumetric > billable {
		billable = volumetric
	}
	return domain.WeightFigures{
		Actual:     actual,
		Volumetric: volumetric,
		Billable:   billable,
		VolumeCm3:  volume,
		PortEntry:  actual > portEntryWeightKg || volume > portEntryVolumeCm3,
	}
}
