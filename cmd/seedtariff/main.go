// Command seedtariff converts a harmonized tariff schedule Excel export into
// a SQL seed file. Reads the HTS_Current sheet (codes and general duty rates)
// and the Trade_Remedies sheet (additional duties by origin).
// Usage: go run ./cmd/seedtariff
// Output: db/seeds/tariff_records.sql
package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type tariffEntry struct {
	code              string
	description       string
	baseRate          float64
	hasTradeRemedy    bool
	tradeRemedyRate   float64
	tradeRemedyOrigin string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "hts_current_export.xlsx"
	outPath := "db/seeds/tariff_records.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseScheduleSheet(f)
	if err != nil {
		return fmt.Errorf("parse schedule sheet: %w", err)
	}
	log.Printf("schedule sheet: %d entries", len(entries))

	remedies, err := parseRemedySheet(f)
	if err != nil {
		return fmt.Errorf("parse trade remedy sheet: %w", err)
	}
	log.Printf("trade remedy sheet: %d entries", len(remedies))

	applyRemedies(entries, remedies)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Tariff schedule seed data generated from Excel.",
		fmt.Sprintf("-- %d entries in batches of %d.", len(entries), batchSize),
		"-- Run: make seed-tariffs",
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d total entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parseScheduleSheet reads the first sheet of the HTS export.
// Columns: A(0)=HTS number (dotted, e.g. 8518.30.20.00), B(1)=indent,
// C(2)=description, D(3)=general rate of duty (free text).
// Data starts at row index 1 (header row).
func parseScheduleSheet(f *excelize.File) ([]*tariffEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []*tariffEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 4 {
			continue
		}

		code := normalizeCode(cellVal(row, 0))
		if code == "" || seen[code] {
			continue
		}

		rate, ok := parseDutyRate(cellVal(row, 3))
		if !ok {
			continue
		}

		seen[code] = true
		entries = append(entries, &tariffEntry{
			code:        code,
			description: strings.TrimSpace(cellVal(row, 2)),
			baseRate:    rate,
		})
	}
	return entries, nil
}

// parseRemedySheet reads the Trade_Remedies sheet.
// Columns: A(0)=HTS number, B(1)=origin country, C(2)=additional rate.
func parseRemedySheet(f *excelize.File) (map[string]*tariffEntry, error) {
	rows, err := f.GetRows("Trade_Remedies")
	if err != nil {
		// Sheet is optional: some exports carry no remedy data.
		return map[string]*tariffEntry{}, nil
	}

	remedies := make(map[string]*tariffEntry)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 3 {
			continue
		}

		code := normalizeCode(cellVal(row, 0))
		origin := strings.ToUpper(strings.TrimSpace(cellVal(row, 1)))
		rate, ok := parseDutyRate(cellVal(row, 2))
		if code == "" || origin == "" || !ok {
			continue
		}

		remedies[code] = &tariffEntry{
			hasTradeRemedy:    true,
			tradeRemedyRate:   rate,
			tradeRemedyOrigin: origin,
		}
	}
	return remedies, nil
}

// applyRemedies copies remedy data onto matching schedule entries. Remedy
// rows are keyed at any prefix length, so an 8-digit entry inherits the
// remedy declared for its 6- or 4-digit parent.
func applyRemedies(entries []*tariffEntry, remedies map[string]*tariffEntry) {
	for _, e := range entries {
		for _, n := range []int{len(e.code), 8, 6, 4} {
			if n > len(e.code) {
				continue
			}
			if r, ok := remedies[e.code[:n]]; ok {
				e.hasTradeRemedy = true
				e.tradeRemedyRate = r.tradeRemedyRate
				e.tradeRemedyOrigin = r.tradeRemedyOrigin
				break
			}
		}
	}
}

// nonDigit matches everything that is not a decimal digit.
var nonDigit = regexp.MustCompile(`[^0-9]`)

// normalizeCode strips dots and whitespace from an HTS number.
// "8518.30.20.00" becomes "8518302000".
func normalizeCode(s string) string {
	return nonDigit.ReplaceAllString(strings.TrimSpace(s), "")
}

// ratePattern matches a number followed by "%".
var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)

// parseDutyRate extracts an ad valorem rate from free-text duty strings.
// Examples:
//
//	"4.9%"           → 0.049
//	"Free"           → 0
//	"25%"            → 0.25
//	"2.6¢/kg + 3.4%" → 0.034 (specific component dropped)
//	"See chapter 99" → not ok
func parseDutyRate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.EqualFold(s, "free") {
		return 0, true
	}
	m := ratePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	var pct float64
	if _, err := fmt.Sscanf(m[1], "%f", &pct); err != nil {
		return 0, false
	}
	return pct / 100, true
}

// cellVal returns row[idx] or "" when the row is short.
func cellVal(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// escapeSQL doubles single quotes for SQL string literals.
func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// writeBatch writes one multi-row INSERT for a slice of entries.
func writeBatch(out *os.File, batch []*tariffEntry) error {
	if _, err := fmt.Fprintln(out,
		"INSERT INTO tariff_records (code, description, base_rate, has_trade_remedy, trade_remedy_rate, trade_remedy_origin) VALUES"); err != nil {
		return err
	}
	for i, e := range batch {
		sep := ","
		if i == len(batch)-1 {
			sep = ""
		}
		if _, err := fmt.Fprintf(out, "('%s', '%s', %g, %t, %g, '%s')%s\n",
			e.code, escapeSQL(e.description), e.baseRate,
			e.hasTradeRemedy, e.tradeRemedyRate, e.tradeRemedyOrigin, sep); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, "ON CONFLICT (code) DO UPDATE SET description = EXCLUDED.description, base_rate = EXCLUDED.base_rate, has_trade_remedy = EXCLUDED.has_trade_remedy, trade_remedy_rate = EXCLUDED.trade_remedy_rate, trade_remedy_origin = EXCLUDED.trade_remedy_origin;")
	return err
}
