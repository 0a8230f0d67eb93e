package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Operation results used as the "result" label of CatalogueOperationsTotal.
const (
	ResultApplied   = "applied"
	ResultNoop      = "noop"
	ResultDuplicate = "duplicate"
	ResultError     = "error"
)

// Catalogue command metrics
var (
	CatalogueOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogue_operations_total",
			Help: "Total number of catalogue commands by operation and result.",
		},
		[]string{"operation", "result"},
	)

	CatalogueShows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalogue_shows",
			Help: "Number of shows currently in the catalogue.",
		},
	)

	CatalogueSaveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalogue_save_duration_seconds",
			Help:    "Time spent persisting the catalogue.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		CatalogueOperationsTotal,
		CatalogueShows,
		CatalogueSaveDuration,
	)
}
