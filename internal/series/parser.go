package series

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"marketcycle/internal/domain/models"
)

// Format identifies the payload shape of a historical series source.
type Format string

const (
	// FormatTabular is delimited text with a header row naming columns.
	FormatTabular Format = "tabular"
	// FormatStructured is a JSON array of records.
	FormatStructured Format = "structured"
)

// Field names tolerated for the ratio column, checked in order. Sources have
// drifted between generic and metric-specific names over time.
var ratioKeys = []string{"ratio", "cape", "pe_ratio", "PE_Ratio", "Trailing_PE_Jan1"}

// Field names tolerated for the period column.
var periodKeys = []string{"date", "year", "Date", "Year", "Month_End"}

// Parse converts a payload into a historical series. Output preserves source
// order; no deduplication or sorting is performed, and rows with unusable
// ratio text are kept (statistics filters them later).
func Parse(payload []byte, format Format) (models.HistoricalSeries, error) {
	switch format {
	case FormatTabular:
		return ParseTabular(bytes.NewReader(payload))
	case FormatStructured:
		return ParseStructured(payload)
	default:
		return nil, fmt.Errorf("unknown series format %q", format)
	}
}

// ParseTabular reads header-described delimited text. The first record names
// fields positionally; each following row is zipped against the headers, and
// a short row yields empty strings for its missing trailing fields. Quoted
// fields are honored by the CSV reader.
func ParseTabular(r io.Reader) (models.HistoricalSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return models.HistoricalSeries{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	ratioIdx := columnIndex(header, ratioKeys)
	periodIdx := columnIndex(header, periodKeys)
	if ratioIdx < 0 {
		return nil, fmt.Errorf("no ratio column in header %v", header)
	}

	var out models.HistoricalSeries
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		out = append(out, models.ValuationRecord{
			Period: fieldAt(row, periodIdx),
			Ratio:  fieldAt(row, ratioIdx),
		})
	}
	return out, nil
}

// ParseStructured decodes a JSON array of records, reading the ratio and
// period from the first tolerated key present on each record.
func ParseStructured(payload []byte) (models.HistoricalSeries, error) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, fmt.Errorf("decode structured series: %w", err)
	}

	out := make(models.HistoricalSeries, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ValuationRecord{
			Period: firstScalar(row, periodKeys),
			Ratio:  firstScalar(row, ratioKeys),
		})
	}
	return out, nil
}

// columnIndex returns the index of the first header matching any candidate,
// compared case-insensitively, or -1.
func columnIndex(header []string, candidates []string) int {
	for _, cand := range candidates {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), cand) {
				return i
			}
		}
	}
	return -1
}

func fieldAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// firstScalar renders the first present candidate key as text. Numbers keep
// their shortest representation so "30.2" survives a JSON round trip.
func firstScalar(row map[string]json.RawMessage, candidates []string) string {
	for _, key := range candidates {
		raw, ok := row[key]
		if !ok || string(raw) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return ""
}
