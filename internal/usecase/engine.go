package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"marketcycle/internal/classify"
	"marketcycle/internal/domain/models"
	drepo "marketcycle/internal/domain/repository"
	"marketcycle/internal/stats"
	applogger "marketcycle/pkg/logger"
)

// Engine runs one ingestion cycle and assembles the immutable EngineResult.
// It holds only the latest result; each refresh replaces it wholesale.
type Engine struct {
	ing        *Ingestor
	table      classify.Table
	defaultAvg float64
	metrics    drepo.Metrics
	log        *applogger.Logger

	mu     sync.RWMutex
	latest *models.EngineResult
}

// NewEngine creates an engine bound to one threshold table. The table is a
// configuration value; nothing downstream inspects which one it is. No
// ambient state is involved, so engines can be built and discarded freely.
func NewEngine(ing *Ingestor, table classify.Table, defaultAvg float64, metrics drepo.Metrics, log *applogger.Logger) (*Engine, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Engine{ing: ing, table: table, defaultAvg: defaultAvg, metrics: metrics, log: log}, nil
}

// Refresh runs ingestion, assembles a fresh result, and installs it as the
// latest. The returned result is never mutated afterwards.
func (e *Engine) Refresh(ctx context.Context) *models.EngineResult {
	start := time.Now()
	snap, series, warnings := e.ing.Ingest(ctx)
	res := Assemble(snap, series, warnings, e.table, e.defaultAvg)

	if e.metrics != nil {
		e.metrics.RecordRefresh(res.OK, time.Since(start).Seconds())
		if res.OK {
			e.metrics.SetCurrentRatio(res.Ratio)
			e.metrics.SetZone(res.Zone.ZoneID)
		}
	}
	if e.log != nil {
		e.log.Info("valuation refreshed",
			applogger.Bool("ok", res.OK),
			applogger.String("zone", res.Zone.ZoneID),
			applogger.Int("warnings", len(res.Warnings)))
	}

	e.mu.Lock()
	e.latest = res
	e.mu.Unlock()
	return res
}

// Latest returns the most recently assembled result, or nil before the
// first refresh completes.
func (e *Engine) Latest() *models.EngineResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.latest
}

// Table returns the engine's threshold table.
func (e *Engine) Table() classify.Table { return e.table }

// Assemble is the pure combination step: no I/O, no clock beyond the
// snapshot's own date. Snapshot-supplied fields win over computation.
func Assemble(snap *models.CurrentSnapshot, series models.HistoricalSeries, warnings []string, table classify.Table, defaultAvg float64) *models.EngineResult {
	// Unreachable given the ingestor's guarantees, but handled so a broken
	// caller still gets the sentinel state instead of partial numbers.
	if snap == nil {
		return models.Unavailable("no snapshot data available", warnings)
	}

	avg := stats.HistoricalAverage(series, defaultAvg)
	if snap.HistoricalAverage != nil {
		avg = *snap.HistoricalAverage
	}

	percentile := snap.Percentile
	if percentile == "" {
		percentile = strconv.Itoa(stats.PercentileRank(series, snap.Ratio))
	}

	zone := classify.Classify(snap.Ratio, table)
	zone = classify.ApplyOverride(zone, snap.Status, snap.StatusText)

	expected := zone.ExpectedReturn
	if snap.ExpectedReturn != "" {
		expected = snap.ExpectedReturn
	}

	updated := snap.Date
	if updated.IsZero() {
		updated = time.Now()
	}

	return &models.EngineResult{
		OK:                true,
		Ratio:             snap.Ratio,
		Percentile:        percentile,
		HistoricalAverage: avg,
		ExpectedReturn:    expected,
		ImpliedReturn:     snap.ImpliedReturn,
		EarningsYield:     snap.EarningsYield,
		Zone:              zone,
		UpdatedAt:         updated,
		Warnings:          warnings,
	}
}
