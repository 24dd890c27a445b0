// Package sources provides snapshot and series source adapters over local
// files and HTTP endpoints.
package sources

import (
	"context"
	"fmt"
	"os"

	"marketcycle/internal/domain/models"
	drepo "marketcycle/internal/domain/repository"
	"marketcycle/internal/series"
)

// FileSnapshotSource reads the current snapshot from a JSON file, typically
// the one maintained by the scheduled scraper.
type FileSnapshotSource struct {
	path string
}

func NewFileSnapshotSource(path string) *FileSnapshotSource {
	return &FileSnapshotSource{path: path}
}

func (s *FileSnapshotSource) Name() string { return "file:" + s.path }

func (s *FileSnapshotSource) Fetch(_ context.Context) (*models.CurrentSnapshot, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read snapshot file: %v", drepo.ErrFetch, err)
	}
	snap, err := models.ParseSnapshot(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", drepo.ErrParse, err)
	}
	return snap, nil
}

// FileSeriesSource reads one historical series from a local file in the
// given format.
type FileSeriesSource struct {
	path   string
	format series.Format
}

func NewFileSeriesSource(path string, format series.Format) *FileSeriesSource {
	return &FileSeriesSource{path: path, format: format}
}

func (s *FileSeriesSource) Name() string { return "file:" + s.path }

func (s *FileSeriesSource) Fetch(_ context.Context) (models.HistoricalSeries, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read series file: %v", drepo.ErrFetch, err)
	}
	out, err := series.Parse(b, s.format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", drepo.ErrParse, err)
	}
	return out, nil
}

var (
	_ drepo.SnapshotSource = (*FileSnapshotSource)(nil)
	_ drepo.SeriesSource   = (*FileSeriesSource)(nil)
)
