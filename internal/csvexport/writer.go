package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sellbridge/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (21 columns).
var columns = []string{
	"Created At",
	"Status",
	"Destination",
	"Origin",
	"Tariff Code",
	"Fallback Tariff",
	"Store Tier",
	"Category",
	"Regime",
	"Listing Price",
	"Displayed Shipping",
	"Handling Fee",
	"Total Revenue",
	"Profit",
	"Profit (Home)",
	"Realized Margin",
	"Target Margin",
	"Recommendation",
	"Confidence",
	"Error Code",
	"Duration (ms)",
}

// Writer wraps csv.Writer for exporting calculation records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 21-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of calculation records to CSV rows and writes them.
func (w *Writer) WriteRecords(records []domain.CalculationRecord) error {
	for i := range records {
		row := recordToRow(&records[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// recordToRow converts a single audit record to a 21-element string slice.
// Failed calculations (or malformed result JSON) fill the metadata columns
// and leave the result columns empty.
func recordToRow(record *domain.CalculationRecord) []string {
	row := make([]string, len(columns))

	row[0] = record.CreatedAt.Format(time.RFC3339)
	row[1] = string(record.Status)
	row[2] = record.DestinationCountry
	row[4] = record.TariffCode
	row[6] = string(record.StoreTier)
	row[7] = record.Category
	row[19] = record.ErrorCode
	row[20] = strconv.FormatInt(record.DurationMS, 10)

	var input domain.CalculationInput
	if err := json.Unmarshal(record.Input, &input); err == nil {
		row[3] = input.OriginCountry
	}

	if record.Status != domain.CalculationStatusSucceeded || len(record.Result) == 0 {
		return row
	}

	var result domain.CalculationResult
	if err := json.Unmarshal(record.Result, &result); err != nil {
		return row
	}

	row[5] = formatBool(result.UsedFallbackTariff)
	row[8] = string(result.Regime)
	row[9] = formatMoney(result.ListingPrice)
	row[10] = formatMoney(result.DisplayedShipping)
	row[11] = formatMoney(result.HandlingFee)
	row[12] = formatMoney(result.TotalRevenue)
	row[13] = formatMoney(result.Profit)
	row[14] = formatMoney(result.ProfitHome)
	row[15] = formatPct(result.RealizedMargin)
	row[16] = formatPct(result.TargetMargin)
	row[17] = string(result.Recommendation.Regime)
	row[18] = string(result.Recommendation.Confidence)

	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in object keys and
// Content-Disposition headers. Replaces non-alphanumeric chars (except - _)
// with _, collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized, date-stamped CSV file name.
func BuildFilename(name string) string {
	return SanitizeFilename(name) + "_" + time.Now().Format("2006-01-02") + ".csv"
}
