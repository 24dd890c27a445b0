package repository

import (
	"context"

	"marketcycle/internal/domain/models"
)

// SnapshotSource fetches the current valuation snapshot from one location.
type SnapshotSource interface {
	Name() string
	Fetch(ctx context.Context) (*models.CurrentSnapshot, error)
}

// SeriesSource fetches one historical series. Sources are tried strictly in
// priority order by the ingestor; the first that parses wins.
type SeriesSource interface {
	Name() string
	Fetch(ctx context.Context) (models.HistoricalSeries, error)
}

// HistoryArchive persists month-end observations across refresh cycles.
type HistoryArchive interface {
	Init(ctx context.Context) error // ensure tables
	Append(ctx context.Context, obs models.Observation) error
	Recent(ctx context.Context, limit int) ([]models.Observation, error)
	Health(ctx context.Context) error
	Close() error
}

// ResultPublisher pushes each assembled result to downstream consumers.
type ResultPublisher interface {
	Publish(ctx context.Context, res *models.EngineResult) error
	Close() error
}

// Metrics records engine observability signals.
type Metrics interface {
	RecordFallback(stage string)
	RecordRefresh(ok bool, seconds float64)
	RecordError(kind string)
	SetCurrentRatio(ratio float64)
	SetZone(zoneID string)
}
