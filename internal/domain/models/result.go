package models

import (
	"fmt"
	"time"
)

// Classification is the zone assigned to a ratio, always fully populated.
type Classification struct {
	ZoneID         string `json:"zone_id"`
	Label          string `json:"label"`
	ExpectedReturn string `json:"expected_return"`
	Description    string `json:"description,omitempty"`
}

// EngineResult is the immutable aggregate produced once per ingestion cycle.
// It is replaced wholesale on the next refresh and never mutated after
// assembly; the error sentinel state (OK=false) carries no numeric fields.
type EngineResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	Ratio             float64        `json:"ratio,omitempty"`
	Percentile        string         `json:"percentile,omitempty"`
	HistoricalAverage float64        `json:"historical_average,omitempty"`
	ExpectedReturn    string         `json:"expected_return,omitempty"`
	ImpliedReturn     *float64       `json:"implied_return,omitempty"`
	EarningsYield     *float64       `json:"earnings_yield,omitempty"`
	Zone              Classification `json:"zone"`
	UpdatedAt         time.Time      `json:"updated_at"`

	Warnings []string `json:"warnings,omitempty"`
}

// Unavailable builds the distinct "data unavailable" result the presentation
// layer renders instead of partially-populated numbers.
func Unavailable(reason string, warnings []string) *EngineResult {
	return &EngineResult{OK: false, Error: reason, Warnings: warnings}
}

// FormattedRatio renders the current ratio with one decimal place.
func (r *EngineResult) FormattedRatio() string {
	return fmt.Sprintf("%.1f", r.Ratio)
}

// FormattedAverage renders the historical average with one decimal place.
func (r *EngineResult) FormattedAverage() string {
	return fmt.Sprintf("%.1f", r.HistoricalAverage)
}

// FormattedPercentile appends an ordinal suffix to a numeric percentile and
// passes pre-formatted strings through untouched.
func (r *EngineResult) FormattedPercentile() string {
	var n int
	if _, err := fmt.Sscanf(r.Percentile, "%d", &n); err != nil || fmt.Sprintf("%d", n) != r.Percentile {
		return r.Percentile
	}
	return fmt.Sprintf("%d%s", n, ordinalSuffix(n))
}

// FormattedDate renders the last-update date in long form, e.g.
// "January 2, 2006".
func (r *EngineResult) FormattedDate() string {
	if r.UpdatedAt.IsZero() {
		return ""
	}
	return r.UpdatedAt.Format("January 2, 2006")
}

func ordinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
