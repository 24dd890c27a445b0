package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	fallbacks    *prometheus.CounterVec
	refreshes    *prometheus.CounterVec
	refreshSecs  prometheus.Histogram
	errorsTotal  *prometheus.CounterVec
	currentRatio prometheus.Gauge
	currentZone  *prometheus.GaugeVec
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketcycle_fallbacks_total",
				Help: "Fallback substitutions by ingestion stage",
			},
			[]string{"stage"},
		),
		refreshes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketcycle_refreshes_total",
				Help: "Completed refresh cycles by outcome",
			},
			[]string{"result"},
		),
		refreshSecs: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "marketcycle_refresh_duration_seconds",
				Help:    "Duration of a full ingestion cycle",
				Buckets: prometheus.DefBuckets,
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketcycle_errors_total",
				Help: "Errors encountered by kind",
			},
			[]string{"type"},
		),
		currentRatio: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "marketcycle_current_ratio",
				Help: "Most recently observed valuation ratio",
			},
		),
		currentZone: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "marketcycle_zone",
				Help: "Current valuation zone (1 for the active zone)",
			},
			[]string{"zone"},
		),
	}
}

// RecordFallback records a fallback substitution for an ingestion stage.
func (r *Recorder) RecordFallback(stage string) {
	r.fallbacks.WithLabelValues(stage).Inc()
}

// RecordRefresh records one completed refresh cycle.
func (r *Recorder) RecordRefresh(ok bool, seconds float64) {
	result := "ok"
	if !ok {
		result = "error"
	}
	r.refreshes.WithLabelValues(result).Inc()
	r.refreshSecs.Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// SetCurrentRatio updates the current-ratio gauge.
func (r *Recorder) SetCurrentRatio(ratio float64) {
	r.currentRatio.Set(ratio)
}

// SetZone marks the active zone, clearing whichever zone was active before.
func (r *Recorder) SetZone(zoneID string) {
	r.currentZone.Reset()
	r.currentZone.WithLabelValues(zoneID).Set(1)
}
