package kvstore

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Store-level Prometheus metrics. All metrics carry a "store" label whose value
// is the Group set in ProviderConfig, allowing multiple store instances to be
// distinguished in dashboards and alerts.
var (
	// HitsTotal counts successful lookups per group.
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvstore_hits_total",
			Help: "Total number of store lookups that found a value.",
		},
		[]string{"store"},
	)

	// MissesTotal counts lookups of absent keys per group.
	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvstore_misses_total",
			Help: "Total number of store lookups for absent keys.",
		},
		[]string{"store"},
	)

	// WritesTotal counts successful writes per group.
	WritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvstore_writes_total",
			Help: "Total number of successful store writes.",
		},
		[]string{"store"},
	)

	// DeletesTotal counts successful deletes per group.
	DeletesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvstore_deletes_total",
			Help: "Total number of successful store deletes.",
		},
		[]string{"store"},
	)

	// ErrorsTotal counts failed operations per group and operation.
	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvstore_errors_total",
			Help: "Total number of failed store operations.",
		},
		[]string{"store", "operation"},
	)
)

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
		WritesTotal,
		DeletesTotal,
		ErrorsTotal,
	)
}

// storeEntriesCollector is a Prometheus Collector that lazily reports the current
// number of entries for a single store group by calling lenFunc at scrape time.
// This avoids stale counts when another process writes to a shared backend.
type storeEntriesCollector struct {
	desc    *prometheus.Desc
	lenFunc func() int
}

func (c *storeEntriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *storeEntriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.lenFunc()))
}

var (
	entriesCollectorMu sync.Mutex
	entriesCollectors  = make(map[string]*storeEntriesCollector)
	// entriesReg is the Prometheus registerer used for entries collectors.
	// Exposed as a variable so tests can substitute an isolated registry.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesCollector registers a per-group entries collector that lazily
// reads the store size at scrape time. If a collector for the same group already
// exists it is replaced, making it safe to call when a new store instance is
// created for a group that was previously registered (e.g., in tests).
func registerEntriesCollector(group string, lenFunc func() int) *storeEntriesCollector {
	desc := prometheus.NewDesc(
		"kvstore_entries",
		"Current number of entries in the store.",
		nil,
		prometheus.Labels{"store": group},
	)
	c := &storeEntriesCollector{desc: desc, lenFunc: lenFunc}

	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()

	if old, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(old)
	}
	entriesCollectors[group] = c
	_ = entriesReg.Register(c)
	return c
}

// unregisterEntriesCollector removes the entries collector for the given group.
func unregisterEntriesCollector(group string) {
	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()

	if c, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(c)
		delete(entriesCollectors, group)
	}
}
