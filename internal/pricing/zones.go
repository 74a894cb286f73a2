package pricing

import (
	"fmt"
	"strings"

	"sellbridge/internal/domain"
)

// CarrierZone is a carrier zone grouping used when a destination country has
// no direct zone entry in a shipping policy.
type CarrierZone string

const (
	ZoneEuropeMajor     CarrierZone = "EU1"
	ZoneEuropeSecondary CarrierZone = "EU2"
	ZoneOceania         CarrierZone = "OC"
	ZoneAsia            CarrierZone = "AS"
	ZoneNorthAmerica    CarrierZone = "NA"
	ZoneOther           CarrierZone = "OTHER"
	// ZoneUnmapped marks a country with no carrier-zone assignment. It never
	// appears as a policy zone code, so lookups for it always miss.
	ZoneUnmapped CarrierZone = "UNMAPPED"
)

// countryCarrierZones is the authoritative country→carrier-zone table.
// Countries absent from it resolve to ZoneUnmapped.
var countryCarrierZones = map[string]CarrierZone{
	// Major Europe
	"DE": ZoneEuropeMajor,
	"FR": ZoneEuropeMajor,
	"GB": ZoneEuropeMajor,
	"IT": ZoneEuropeMajor,
	"ES": ZoneEuropeMajor,
	"NL": ZoneEuropeMajor,
	"BE": ZoneEuropeMajor,
	"AT": ZoneEuropeMajor,
	// Secondary Europe
	"PL": ZoneEuropeSecondary,
	"CZ": ZoneEuropeSecondary,
	"PT": ZoneEuropeSecondary,
	"GR": ZoneEuropeSecondary,
	"HU": ZoneEuropeSecondary,
	"RO": ZoneEuropeSecondary,
	"SE": ZoneEuropeSecondary,
	"DK": ZoneEuropeSecondary,
	"FI": ZoneEuropeSecondary,
	"NO": ZoneEuropeSecondary,
	"CH": ZoneEuropeSecondary,
	"IE": ZoneEuropeSecondary,
	// Oceania
	"AU": ZoneOceania,
	"NZ": ZoneOceania,
	// Named Asian markets
	"SG": ZoneAsia,
	"HK": ZoneAsia,
	"TW": ZoneAsia,
	"KR": ZoneAsia,
	"TH": ZoneAsia,
	"MY": ZoneAsia,
	"PH": ZoneAsia,
	"ID": ZoneAsia,
	"VN": ZoneAsia,
	// North America
	"US": ZoneNorthAmerica,
	"CA": ZoneNorthAmerica,
	"MX": ZoneNorthAmerica,
	// Residual bucket
	"BR": ZoneOther,
	"AR": ZoneOther,
	"CL": ZoneOther,
	"ZA": ZoneOther,
	"AE": ZoneOther,
	"SA": ZoneOther,
	"IL": ZoneOther,
	"TR": ZoneOther,
	"IN": ZoneOther,
}

// CarrierZoneFor translates a country code to its carrier zone, or
// ZoneUnmapped when the country has no assignment.
func CarrierZoneFor(country string) CarrierZone {
	if z, ok := countryCarrierZones[strings.ToUpper(country)]; ok {
		return z
	}
	return ZoneUnmapped
}

// ResolveZone selects the policy covering the shipment's weight and
// estimated price, then matches a zone by destination country code, retrying
// with the country's carrier zone when no direct entry exists. Both lookups
// missing is a hard error.
func ResolveZone(destinationCountry string, weight, estimatedPrice float64, policies []domain.ShippingPolicy) (domain.ShippingZone, string, error) {
	var policy *domain.ShippingPolicy
	for i := range policies {
		if !policies[i].IsActive {
			continue
		}
		if policies[i].Covers(weight, estimatedPrice) {
			policy = &policies[i]
			break
		}
	}
	if policy == nil {
		return domain.ShippingZone{}, "", fmt.Errorf("weight %.2fkg price %.2f: %w", weight, estimatedPrice, domain.ErrNoShippingPolicy)
	}

	country := strings.ToUpper(destinationCountry)
	if zone, ok := matchZone(policy.Zones, country); ok {
		return zone, policy.Name, nil
	}
	if carrier := CarrierZoneFor(country); carrier != ZoneUnmapped {
		if zone, ok := matchZone(policy.Zones, string(carrier)); ok {
			return zone, policy.Name, nil
		}
	}
	return domain.ShippingZone{}, "", fmt.Errorf("country %s: %w", country, domain.ErrUnsupportedDestination)
}

func matchZone(zones []domain.ShippingZone, code string) (domain.ShippingZone, bool) {
	for i := range zones {
		if strings.EqualFold(zones[i].ZoneCode, code) {
			return zones[i], true
		}
	}
	return domain.ShippingZone{}, false
}
