package sources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	drepo "marketcycle/internal/domain/repository"
	"marketcycle/internal/series"
)

func TestFileSnapshotMissingFileIsFetchFailure(t *testing.T) {
	src := NewFileSnapshotSource(filepath.Join(t.TempDir(), "absent.json"))
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, drepo.ErrFetch) {
		t.Fatalf("missing file should classify as a fetch failure, got %v", err)
	}
}

func TestFileSnapshotMalformedPayloadIsParseFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(`{"cape": "not a number"`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	src := NewFileSnapshotSource(path)
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, drepo.ErrParse) {
		t.Fatalf("malformed payload should classify as a parse failure, got %v", err)
	}
}

func TestFileSeriesMissingFileIsFetchFailure(t *testing.T) {
	src := NewFileSeriesSource(filepath.Join(t.TempDir(), "absent.csv"), series.FormatTabular)
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, drepo.ErrFetch) {
		t.Fatalf("missing file should classify as a fetch failure, got %v", err)
	}
}

func TestFileSeriesMalformedPayloadIsParseFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.json")
	if err := os.WriteFile(path, []byte(`{"rows":`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	src := NewFileSeriesSource(path, series.FormatStructured)
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, drepo.ErrParse) {
		t.Fatalf("malformed payload should classify as a parse failure, got %v", err)
	}
}

func TestFileSeriesReadsTabularPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	if err := os.WriteFile(path, []byte("year,cape\n2023,28.1\n2024,30.2\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	src := NewFileSeriesSource(path, series.FormatTabular)
	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 || got[0].Ratio != "28.1" || got[1].Period != "2024" {
		t.Fatalf("unexpected series %+v", got)
	}
}
