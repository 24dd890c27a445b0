package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketcycle/internal/domain/models"
	drepo "marketcycle/internal/domain/repository"
	applogger "marketcycle/pkg/logger"
)

// FallbackSnapshot is substituted when the primary snapshot source cannot be
// fetched or parsed. The literals place the market in the worst zone so a
// stale page errs on the side of caution.
func FallbackSnapshot() *models.CurrentSnapshot {
	return &models.CurrentSnapshot{
		Date:       time.Now(),
		Ratio:      38.0,
		Status:     "bubble",
		StatusText: "BUBBLE TERRITORY",
	}
}

// Ingestor resolves the current snapshot and the historical series from
// prioritized source lists. Every failure path resolves to a fallback value
// plus a warning; Ingest never returns an error.
type Ingestor struct {
	snapshot drepo.SnapshotSource
	history  []drepo.SeriesSource
	timeout  time.Duration
	metrics  drepo.Metrics
	log      *applogger.Logger
}

// NewIngestor creates an Ingestor. timeout bounds each individual fetch;
// a timed-out fetch is treated exactly like a failed one.
func NewIngestor(snapshot drepo.SnapshotSource, history []drepo.SeriesSource, timeout time.Duration, metrics drepo.Metrics, log *applogger.Logger) *Ingestor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Ingestor{snapshot: snapshot, history: history, timeout: timeout, metrics: metrics, log: log}
}

// Ingest fetches the snapshot and the historical series concurrently; the
// two are independent and both complete (or fall back) before returning.
func (i *Ingestor) Ingest(ctx context.Context) (*models.CurrentSnapshot, models.HistoricalSeries, []string) {
	type snapOut struct {
		snap     *models.CurrentSnapshot
		warnings []string
	}
	type seriesOut struct {
		series   models.HistoricalSeries
		warnings []string
	}

	snapCh := make(chan snapOut, 1)
	seriesCh := make(chan seriesOut, 1)

	go func() {
		s, w := i.ingestSnapshot(ctx)
		snapCh <- snapOut{snap: s, warnings: w}
	}()
	go func() {
		s, w := i.ingestSeries(ctx)
		seriesCh <- seriesOut{series: s, warnings: w}
	}()

	so := <-snapCh
	ho := <-seriesCh

	warnings := append(so.warnings, ho.warnings...)
	return so.snap, ho.series, warnings
}

func (i *Ingestor) ingestSnapshot(ctx context.Context) (*models.CurrentSnapshot, []string) {
	if i.snapshot == nil {
		return FallbackSnapshot(), []string{"snapshot: no source configured; using fallback constant"}
	}

	fctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	snap, err := i.snapshot.Fetch(fctx)
	if err != nil {
		if i.metrics != nil {
			i.metrics.RecordFallback("snapshot")
			i.metrics.RecordError(errKind(err))
		}
		if i.log != nil {
			i.log.Warn("snapshot source failed, substituting fallback",
				applogger.String("source", i.snapshot.Name()), applogger.Error(err))
		}
		return FallbackSnapshot(), []string{fmt.Sprintf("snapshot: %s failed (%v); using fallback constant", i.snapshot.Name(), err)}
	}
	return snap, nil
}

// ingestSeries walks the priority list; the first source with usable records
// wins outright, never merged with later ones. Exhaustion yields the seeded
// synthetic series.
func (i *Ingestor) ingestSeries(ctx context.Context) (models.HistoricalSeries, []string) {
	var warnings []string
	for _, src := range i.history {
		fctx, cancel := context.WithTimeout(ctx, i.timeout)
		series, err := src.Fetch(fctx)
		cancel()

		if err != nil {
			if i.metrics != nil {
				i.metrics.RecordFallback("history")
				i.metrics.RecordError(errKind(err))
			}
			warnings = append(warnings, fmt.Sprintf("history: %s failed: %v", src.Name(), err))
			continue
		}
		if len(series.UsableRatios()) == 0 {
			if i.metrics != nil {
				i.metrics.RecordFallback("history")
				i.metrics.RecordError(errKind(drepo.ErrEmptySeries))
			}
			warnings = append(warnings, fmt.Sprintf("history: %s: %v", src.Name(), drepo.ErrEmptySeries))
			continue
		}
		if i.log != nil {
			i.log.Debug("historical series resolved",
				applogger.String("source", src.Name()), applogger.Int("records", len(series)))
		}
		return series, warnings
	}

	if i.metrics != nil {
		i.metrics.RecordFallback("synthetic")
	}
	warnings = append(warnings, "history: all sources failed; generated synthetic series")
	if i.log != nil {
		i.log.Warn("all historical sources failed, generating synthetic series")
	}
	return SyntheticSeries(), warnings
}

// errKind maps a source failure onto its metrics label.
func errKind(err error) string {
	switch {
	case errors.Is(err, drepo.ErrParse):
		return "parse"
	case errors.Is(err, drepo.ErrFetch):
		return "fetch"
	case errors.Is(err, drepo.ErrEmptySeries):
		return "empty_series"
	default:
		return "unknown"
	}
}
