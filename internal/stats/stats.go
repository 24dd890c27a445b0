// Package stats computes descriptive statistics over a historical
// valuation series.
package stats

import (
	"math"

	"marketcycle/internal/domain/models"
)

// DefaultPercentile is reported when no usable history exists to rank
// against.
const DefaultPercentile = 50

// HistoricalAverage returns the arithmetic mean of all usable ratios, or
// def when the filtered series is empty. def is a configuration constant,
// never recomputed.
func HistoricalAverage(series models.HistoricalSeries, def float64) float64 {
	ratios := series.UsableRatios()
	if len(ratios) == 0 {
		return def
	}
	var sum float64
	for _, v := range ratios {
		sum += v
	}
	return sum / float64(len(ratios))
}

// PercentileRank returns the share of usable historical ratios less than or
// equal to ratio, scaled to [0,100]. Rounding is half-up: 0.5 fractions
// round toward 100.
func PercentileRank(series models.HistoricalSeries, ratio float64) int {
	ratios := series.UsableRatios()
	if len(ratios) == 0 {
		return DefaultPercentile
	}
	var atOrBelow int
	for _, v := range ratios {
		if v <= ratio {
			atOrBelow++
		}
	}
	rank := float64(atOrBelow) / float64(len(ratios)) * 100
	return int(math.Floor(rank + 0.5))
}
