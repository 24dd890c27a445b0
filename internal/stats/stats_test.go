package stats

import (
	"testing"

	"marketcycle/internal/domain/models"
)

func seriesOf(ratios ...string) models.HistoricalSeries {
	out := make(models.HistoricalSeries, 0, len(ratios))
	for _, r := range ratios {
		out = append(out, models.ValuationRecord{Ratio: r})
	}
	return out
}

func TestHistoricalAverageEmpty(t *testing.T) {
	got := HistoricalAverage(nil, 17.8)
	if got != 17.8 {
		t.Fatalf("expected default 17.8, got %v", got)
	}
}

func TestHistoricalAverage(t *testing.T) {
	got := HistoricalAverage(seriesOf("10", "20"), 17.8)
	if got != 15.0 {
		t.Fatalf("expected 15.0, got %v", got)
	}
}

func TestHistoricalAverageSkipsUnusable(t *testing.T) {
	got := HistoricalAverage(seriesOf("10", "", "n/a", "-3", "20"), 17.8)
	if got != 15.0 {
		t.Fatalf("unusable ratios must be excluded, got %v", got)
	}
}

func TestPercentileRankEmpty(t *testing.T) {
	if got := PercentileRank(nil, 25); got != DefaultPercentile {
		t.Fatalf("expected %d on empty series, got %d", DefaultPercentile, got)
	}
}

func TestPercentileRank(t *testing.T) {
	tests := []struct {
		name   string
		series models.HistoricalSeries
		ratio  float64
		want   int
	}{
		{"half", seriesOf("10", "20", "30", "40"), 25, 50},
		{"above all", seriesOf("10", "20", "30"), 35, 100},
		{"below all", seriesOf("10", "20", "30"), 5, 0},
		{"two thirds rounds up", seriesOf("1", "2", "3"), 2, 67},
		{"one third rounds down", seriesOf("1", "2", "3"), 1, 33},
		{"exact half fraction rounds up", seriesOf("1", "2", "3", "4", "5", "6", "7", "8"), 1, 13},
		{"equal values count", seriesOf("20", "20", "30"), 20, 67},
	}
	for _, tt := range tests {
		if got := PercentileRank(tt.series, tt.ratio); got != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestPercentileRankIgnoresUnusable(t *testing.T) {
	series := seriesOf("10", "", "bad", "30")
	if got := PercentileRank(series, 20); got != 50 {
		t.Fatalf("expected 50 over the two usable ratios, got %d", got)
	}
}
