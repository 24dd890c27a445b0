package usecase

import (
	"context"
	"time"

	"marketcycle/internal/domain/models"
	drepo "marketcycle/internal/domain/repository"
	applogger "marketcycle/pkg/logger"
)

// Refresher drives the engine on a fixed schedule (daily in production,
// matching the upstream scraper cadence) and fans successful results out to
// the archive and publishers.
type Refresher struct {
	engine     *Engine
	interval   time.Duration
	archive    drepo.HistoryArchive
	publishers []drepo.ResultPublisher
	log        *applogger.Logger

	stop chan struct{}
	done chan struct{}
}

// NewRefresher creates a refresher. archive and publishers may be nil/empty;
// the refresh itself still runs.
func NewRefresher(engine *Engine, interval time.Duration, archive drepo.HistoryArchive, publishers []drepo.ResultPublisher, log *applogger.Logger) *Refresher {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Refresher{
		engine:     engine,
		interval:   interval,
		archive:    archive,
		publishers: publishers,
		log:        log,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start runs an immediate cycle, then ticks until Stop or ctx cancellation.
func (r *Refresher) Start(ctx context.Context) {
	go func() {
		defer close(r.done)

		r.cycle(ctx)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stop:
				return
			case <-ticker.C:
				r.cycle(ctx)
			}
		}
	}()
}

// Stop halts the schedule and waits for the loop to exit.
func (r *Refresher) Stop() {
	close(r.stop)
	<-r.done
}

func (r *Refresher) cycle(ctx context.Context) {
	res := r.engine.Refresh(ctx)
	if !res.OK {
		return
	}

	if r.archive != nil {
		obs := models.Observation{
			MonthEnd: MonthEnd(res.UpdatedAt),
			Ratio:    res.Ratio,
			Zone:     res.Zone.ZoneID,
		}
		if err := r.archive.Append(ctx, obs); err != nil && r.log != nil {
			r.log.Warn("archive append failed", applogger.Error(err))
		}
	}

	for _, pub := range r.publishers {
		if err := pub.Publish(ctx, res); err != nil && r.log != nil {
			r.log.Warn("result publish failed", applogger.Error(err))
		}
	}
}

// MonthEnd maps an observation date to the month-end it belongs to. Readings
// before the 15th attribute to the previous month, so a month needs two
// weeks of data before it gets its own row.
func MonthEnd(t time.Time) time.Time {
	year, month := t.Year(), t.Month()
	if t.Day() < 15 {
		month--
		if month < time.January {
			month = time.December
			year--
		}
	}
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}
