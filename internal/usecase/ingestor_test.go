package usecase

import (
	"context"
	"errors"
	"testing"

	"marketcycle/internal/domain/models"
	drepo "marketcycle/internal/domain/repository"
)

type stubSnapshot struct {
	snap *models.CurrentSnapshot
	err  error
}

func (s *stubSnapshot) Name() string { return "stub-snapshot" }
func (s *stubSnapshot) Fetch(context.Context) (*models.CurrentSnapshot, error) {
	return s.snap, s.err
}

type stubSeries struct {
	name   string
	series models.HistoricalSeries
	err    error
}

func (s *stubSeries) Name() string { return s.name }
func (s *stubSeries) Fetch(context.Context) (models.HistoricalSeries, error) {
	return s.series, s.err
}

func TestIngestSnapshotFallback(t *testing.T) {
	ing := NewIngestor(
		&stubSnapshot{err: errors.New("boom")},
		nil, 0, nil, nil,
	)
	snap, _, warnings := ing.Ingest(context.Background())

	if snap.Ratio != 38.0 || snap.Status != "bubble" || snap.StatusText != "BUBBLE TERRITORY" {
		t.Fatalf("unexpected fallback snapshot %+v", snap)
	}
	if len(warnings) == 0 {
		t.Fatalf("expected a snapshot warning")
	}
}

func TestIngestSeriesPriorityOrder(t *testing.T) {
	monthly := &stubSeries{name: "monthly", err: errors.New("unreachable")}
	annual := &stubSeries{name: "annual", series: models.HistoricalSeries{
		{Period: "1999", Ratio: "30.2"},
		{Period: "2000", Ratio: "26.4"},
	}}
	last := &stubSeries{name: "last", series: models.HistoricalSeries{
		{Period: "2001", Ratio: "99.9"},
	}}

	ing := NewIngestor(
		&stubSnapshot{snap: &models.CurrentSnapshot{Ratio: 20}},
		[]drepo.SeriesSource{monthly, annual, last}, 0, nil, nil,
	)
	_, series, warnings := ing.Ingest(context.Background())

	if len(series) != 2 || series[0].Ratio != "30.2" {
		t.Fatalf("expected annual series to win, got %+v", series)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning for the failed monthly source, got %v", warnings)
	}
}

func TestIngestSeriesSkipsEmptyUsable(t *testing.T) {
	empty := &stubSeries{name: "empty", series: models.HistoricalSeries{
		{Period: "1999", Ratio: ""},
		{Period: "2000", Ratio: "n/a"},
	}}
	good := &stubSeries{name: "good", series: models.HistoricalSeries{
		{Period: "2001", Ratio: "15.5"},
	}}

	ing := NewIngestor(
		&stubSnapshot{snap: &models.CurrentSnapshot{Ratio: 20}},
		[]drepo.SeriesSource{empty, good}, 0, nil, nil,
	)
	_, series, warnings := ing.Ingest(context.Background())

	if len(series) != 1 || series[0].Ratio != "15.5" {
		t.Fatalf("source with no usable ratios must be skipped, got %+v", series)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestIngestSeriesExhaustionYieldsSynthetic(t *testing.T) {
	ing := NewIngestor(
		&stubSnapshot{snap: &models.CurrentSnapshot{Ratio: 20}},
		[]drepo.SeriesSource{
			&stubSeries{name: "a", err: errors.New("down")},
			&stubSeries{name: "b", err: errors.New("down")},
		}, 0, nil, nil,
	)
	_, series, warnings := ing.Ingest(context.Background())

	want := SyntheticSeries()
	if len(series) != len(want) {
		t.Fatalf("expected synthetic series of %d records, got %d", len(want), len(series))
	}
	if series[0] != want[0] {
		t.Fatalf("synthetic series should be deterministic, got %+v", series[0])
	}
	if len(warnings) != 3 {
		t.Fatalf("expected two failure warnings plus the synthetic notice, got %v", warnings)
	}
}

func TestIngestNoSnapshotSource(t *testing.T) {
	ing := NewIngestor(nil, nil, 0, nil, nil)
	snap, series, warnings := ing.Ingest(context.Background())

	if snap == nil || snap.Ratio != 38.0 {
		t.Fatalf("expected fallback snapshot, got %+v", snap)
	}
	if len(series) != len(SyntheticSeries()) {
		t.Fatalf("expected synthetic series")
	}
	if len(warnings) != 2 {
		t.Fatalf("expected snapshot and series warnings, got %v", warnings)
	}
}
