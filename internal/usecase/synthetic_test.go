package usecase

import (
	"testing"
)

func TestSyntheticSeriesDeterministic(t *testing.T) {
	a := SyntheticSeries()
	b := SyntheticSeries()
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("record %d differs across runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSyntheticSeriesShape(t *testing.T) {
	s := SyntheticSeries()
	if len(s) != len(syntheticAnnualPE)*12 {
		t.Fatalf("expected %d records, got %d", len(syntheticAnnualPE)*12, len(s))
	}
	if s[0].Period != "1980-01-31" {
		t.Fatalf("first record should be Jan 1980 month-end, got %q", s[0].Period)
	}
	if s[1].Period != "1980-02-29" {
		t.Fatalf("leap-year Feb 1980 month-end expected, got %q", s[1].Period)
	}
	if s[len(s)-1].Period != "2024-12-31" {
		t.Fatalf("last record should be Dec 2024 month-end, got %q", s[len(s)-1].Period)
	}
}

func TestSyntheticSeriesWithinBand(t *testing.T) {
	s := SyntheticSeries()
	for i, rec := range s {
		base := syntheticAnnualPE[i/12]
		v, ok := rec.RatioValue()
		if !ok {
			t.Fatalf("record %d not usable: %+v", i, rec)
		}
		// 0.05 covers the one-decimal rounding on top of the ±10% band.
		if v < base*0.9-0.05 || v > base*1.1+0.05 {
			t.Fatalf("record %d (%v) outside ±10%% of %v", i, v, base)
		}
	}
}
