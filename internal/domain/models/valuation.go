package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"marketcycle/pkg/util"
)

// ValuationRecord is a single historical observation of a valuation ratio.
// Period is the source's timestamp or year label; Ratio is kept as the raw
// field text so that malformed rows survive parsing and are only excluded
// at statistics time.
type ValuationRecord struct {
	Period string `json:"period"`
	Ratio  string `json:"ratio"`
}

// RatioValue parses the raw ratio text. A record is usable only when the
// value is a positive finite number.
func (r ValuationRecord) RatioValue() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Ratio), 64)
	if err != nil {
		return 0, false
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// HistoricalSeries is an ordered sequence of records; insertion order is
// chronological order. It may be empty.
type HistoricalSeries []ValuationRecord

// UsableRatios returns the ratios of all records that pass the
// positive-finite filter, in series order.
func (s HistoricalSeries) UsableRatios() []float64 {
	out := make([]float64, 0, len(s))
	for _, rec := range s {
		if v, ok := rec.RatioValue(); ok {
			out = append(out, v)
		}
	}
	return out
}

// CurrentSnapshot is the most recent valuation observation. All fields other
// than Date and Ratio are optional overrides supplied by the upstream scraper;
// when present they are authoritative and bypass the matching computation.
type CurrentSnapshot struct {
	Date              time.Time
	Ratio             float64
	Percentile        string // numeric or pre-formatted; empty when absent
	Status            string
	StatusText        string
	ExpectedReturn    string
	HistoricalAverage *float64
	ImpliedReturn     *float64
	EarningsYield     *float64
}

// snapshotJSON mirrors the wire shape produced by the upstream updater. The
// ratio arrives under "cape" or "pe_ratio" depending on which metric the
// deployment tracks; percentile may be a number or a pre-formatted string.
type snapshotJSON struct {
	Date              string          `json:"date"`
	CAPE              *float64        `json:"cape"`
	PERatio           *float64        `json:"pe_ratio"`
	Percentile        json.RawMessage `json:"percentile"`
	Status            string          `json:"status"`
	StatusText        string          `json:"status_text"`
	ExpectedReturn    string          `json:"expected_10yr_return"`
	HistoricalAverage *float64        `json:"historical_average"`
	ImpliedReturn     *float64        `json:"impliedReturn"`
	EarningsYield     *float64        `json:"earningsYield"`
}

// ParseSnapshot decodes a current-snapshot payload, tolerating the ratio key
// drift between CAPE and P/E deployments.
func ParseSnapshot(b []byte) (*CurrentSnapshot, error) {
	var raw snapshotJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	var ratio float64
	switch {
	case raw.CAPE != nil:
		ratio = *raw.CAPE
	case raw.PERatio != nil:
		ratio = *raw.PERatio
	default:
		return nil, fmt.Errorf("snapshot missing ratio (cape/pe_ratio)")
	}
	if ratio <= 0 || math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return nil, fmt.Errorf("snapshot ratio not a positive finite number: %v", ratio)
	}

	snap := &CurrentSnapshot{
		Ratio:             ratio,
		Status:            raw.Status,
		StatusText:        raw.StatusText,
		ExpectedReturn:    raw.ExpectedReturn,
		HistoricalAverage: raw.HistoricalAverage,
		ImpliedReturn:     raw.ImpliedReturn,
		EarningsYield:     raw.EarningsYield,
	}

	if raw.Date != "" {
		t, err := parseSnapshotDate(raw.Date)
		if err != nil {
			return nil, fmt.Errorf("snapshot date: %w", err)
		}
		snap.Date = t
	}

	if len(raw.Percentile) > 0 && string(raw.Percentile) != "null" {
		var asString string
		if err := json.Unmarshal(raw.Percentile, &asString); err == nil {
			snap.Percentile = asString
		} else {
			var asNumber float64
			if err := json.Unmarshal(raw.Percentile, &asNumber); err != nil {
				return nil, fmt.Errorf("snapshot percentile: %s", raw.Percentile)
			}
			snap.Percentile = strconv.Itoa(int(math.Floor(asNumber + 0.5)))
		}
	}

	return snap, nil
}

func parseSnapshotDate(s string) (time.Time, error) {
	if t, ok := util.ParseTime(s); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Observation is one archived month-end reading, as maintained by the
// history archive.
type Observation struct {
	MonthEnd time.Time `json:"month_end"`
	Ratio    float64   `json:"ratio"`
	Zone     string    `json:"zone"`
}
