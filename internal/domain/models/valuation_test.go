package models

import (
	"testing"
	"time"
)

func TestParseSnapshotCAPE(t *testing.T) {
	payload := []byte(`{
		"date": "2024-06-20T14:30:00.123456",
		"cape": 34.2,
		"percentile": 97,
		"status": "extremely-expensive",
		"status_text": "EXTREMELY EXPENSIVE",
		"expected_10yr_return": "-2-0%",
		"historical_average": 17.1,
		"impliedReturn": 0.029,
		"earningsYield": 0.034
	}`)
	snap, err := ParseSnapshot(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Ratio != 34.2 {
		t.Fatalf("unexpected ratio %v", snap.Ratio)
	}
	if snap.Percentile != "97" {
		t.Fatalf("numeric percentile should become text, got %q", snap.Percentile)
	}
	if snap.Status != "extremely-expensive" || snap.StatusText != "EXTREMELY EXPENSIVE" {
		t.Fatalf("unexpected overrides %+v", snap)
	}
	if snap.HistoricalAverage == nil || *snap.HistoricalAverage != 17.1 {
		t.Fatalf("historical average lost")
	}
	if snap.ImpliedReturn == nil || snap.EarningsYield == nil {
		t.Fatalf("passthrough fields lost")
	}
	want := time.Date(2024, 6, 20, 14, 30, 0, 123456000, time.UTC)
	if !snap.Date.Equal(want) {
		t.Fatalf("unexpected date %v", snap.Date)
	}
}

func TestParseSnapshotPERatioKey(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{"date":"2024-06-20","pe_ratio":29.6}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Ratio != 29.6 {
		t.Fatalf("unexpected ratio %v", snap.Ratio)
	}
	if snap.Percentile != "" {
		t.Fatalf("absent percentile should stay empty, got %q", snap.Percentile)
	}
}

func TestParseSnapshotFractionalPercentileRounds(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{"cape":30,"percentile":97.6}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Percentile != "98" {
		t.Fatalf("fractional percentile should round half-up, got %q", snap.Percentile)
	}
	snap, err = ParseSnapshot([]byte(`{"cape":30,"percentile":97.4}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Percentile != "97" {
		t.Fatalf("fractional percentile should round half-up, got %q", snap.Percentile)
	}
}

func TestParseSnapshotStringPercentile(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{"cape":30,"percentile":"Top 5%"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Percentile != "Top 5%" {
		t.Fatalf("pre-formatted percentile lost: %q", snap.Percentile)
	}
}

func TestParseSnapshotErrors(t *testing.T) {
	cases := []string{
		`{`,
		`{"date":"2024-06-20"}`,
		`{"cape":0}`,
		`{"cape":-5}`,
		`{"cape":30,"date":"June 2024"}`,
	}
	for _, c := range cases {
		if _, err := ParseSnapshot([]byte(c)); err == nil {
			t.Fatalf("expected error for %s", c)
		}
	}
}

func TestRatioValue(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"30.2", 30.2, true},
		{" 15.5 ", 15.5, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"-3", 0, false},
		{"0", 0, false},
	}
	for _, tt := range tests {
		got, ok := ValuationRecord{Ratio: tt.raw}.RatioValue()
		if ok != tt.ok || got != tt.want {
			t.Fatalf("RatioValue(%q): got (%v,%v), want (%v,%v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestUsableRatios(t *testing.T) {
	s := HistoricalSeries{
		{Ratio: "10"},
		{Ratio: ""},
		{Ratio: "bad"},
		{Ratio: "20"},
	}
	got := s.UsableRatios()
	if len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Fatalf("unexpected usable ratios %v", got)
	}
}
