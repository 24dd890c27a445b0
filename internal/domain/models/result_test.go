package models

import (
	"testing"
	"time"
)

func TestFormattedPercentile(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1st"},
		{"2", "2nd"},
		{"3", "3rd"},
		{"4", "4th"},
		{"11", "11th"},
		{"12", "12th"},
		{"13", "13th"},
		{"21", "21st"},
		{"97", "97th"},
		{"Top 5%", "Top 5%"},
		{"", ""},
	}
	for _, tt := range tests {
		r := EngineResult{Percentile: tt.in}
		if got := r.FormattedPercentile(); got != tt.want {
			t.Fatalf("FormattedPercentile(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormattedNumbers(t *testing.T) {
	r := EngineResult{Ratio: 29.64, HistoricalAverage: 17.849}
	if got := r.FormattedRatio(); got != "29.6" {
		t.Fatalf("unexpected ratio %q", got)
	}
	if got := r.FormattedAverage(); got != "17.8" {
		t.Fatalf("unexpected average %q", got)
	}
}

func TestFormattedDate(t *testing.T) {
	r := EngineResult{UpdatedAt: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)}
	if got := r.FormattedDate(); got != "June 20, 2024" {
		t.Fatalf("unexpected date %q", got)
	}
	empty := EngineResult{}
	if got := empty.FormattedDate(); got != "" {
		t.Fatalf("zero time should render empty, got %q", got)
	}
}

func TestUnavailable(t *testing.T) {
	res := Unavailable("no data", []string{"w1"})
	if res.OK || res.Error != "no data" || len(res.Warnings) != 1 {
		t.Fatalf("unexpected sentinel %+v", res)
	}
}
