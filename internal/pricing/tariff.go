package pricing

import (
	"fmt"
	"strings"

	"sellbridge/internal/domain"
)

// fallbackDutyRate is applied when a classification code cannot be resolved.
// Conservative on purpose: callers surface the fallback flag as a warning.
const fallbackDutyRate = 0.06

// TariffTable provides in-memory duty-rate lookups by classification code.
// It is immutable after construction and safe for concurrent access.
type TariffTable struct {
	byCode map[string]domain.TariffRecord
}

// NewTariffTable builds a TariffTable from records loaded from the database.
func NewTariffTable(records []domain.TariffRecord) *TariffTable {
	m := make(map[string]domain.TariffRecord, len(records))
	for i := range records {
		m[records[i].Code] = records[i]
	}
	return &TariffTable{byCode: m}
}

// Len returns the number of records in the table.
func (t *TariffTable) Len() int { return len(t.byCode) }

// lookup finds a record by exact code, then falls back from 8→6→4 digit
// prefixes.
func (t *TariffTable) lookup(code string) (domain.TariffRecord, bool) {
	if len(t.byCode) == 0 || code == "" {
		return domain.TariffRecord{}, false
	}
	if rec, ok := t.byCode[code]; ok {
		return rec, true
	}
	for _, prefixLen := range []int{8, 6, 4} {
		if len(code) > prefixLen {
			if rec, ok := t.byCode[code[:prefixLen]]; ok {
				return rec, true
			}
		}
	}
	return domain.TariffRecord{}, false
}

// Resolve computes the composite duty rate for a classification code and
// origin country. A missing code degrades to the fallback rate with
// UsedFallback set; it is never an error.
func (t *TariffTable) Resolve(code, originCountry string) domain.ResolvedTariff {
	rec, ok := t.lookup(code)
	if !ok {
		return domain.ResolvedTariff{
			Code:         code,
			Description:  fmt.Sprintf("unclassified (fallback rate %.0f%%)", fallbackDutyRate*100),
			Rate:         fallbackDutyRate,
			BaseRate:     fallbackDutyRate,
			UsedFallback: true,
		}
	}

	resolved := domain.ResolvedTariff{
		Code:        rec.Code,
		Description: rec.Description,
		Rate:        rec.BaseRate,
		BaseRate:    rec.BaseRate,
	}
	if rec.HasTradeRemedy && strings.EqualFold(originCountry, rec.TradeRemedyOrigin) {
		resolved.Rate = rec.BaseRate + rec.TradeRemedyRate
		resolved.TradeRemedyApplied = true
	}
	return resolved
}
