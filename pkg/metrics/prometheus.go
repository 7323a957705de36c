// Package metrics provides Prometheus metrics for ride queues and histories.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label names.
const (
	labelRide      = "ride"
	labelComponent = "component"
	labelKind      = "kind"
	labelOperation = "operation"
)

// Manager manages all Prometheus metrics for rides.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	riderBuckets     []float64
	registry         prometheus.Registerer

	// Queue
	visitorsEnqueued *prometheus.CounterVec
	visitorsDequeued *prometheus.CounterVec
	queueSize        *prometheus.GaugeVec

	// History
	historySize  *prometheus.GaugeVec
	historySorts *prometheus.CounterVec

	// Cycles
	cycles         *prometheus.CounterVec
	ridersMoved    *prometheus.CounterVec
	ridersPerCycle prometheus.Histogram

	// CSV persistence
	recordsExported  *prometheus.CounterVec
	recordsImported  *prometheus.CounterVec
	recordsMalformed *prometheus.CounterVec
	csvLatency       *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ridequeue",
		subsystem:        "ride",
		histogramBuckets: prometheus.DefBuckets,
		riderBuckets:     []float64{1, 2, 4, 8, 16, 32, 64},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.visitorsEnqueued = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "visitors_enqueued_total",
		Help:      "Total number of visitors that joined a waiting queue",
	}, []string{labelRide})

	m.visitorsDequeued = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "visitors_dequeued_total",
		Help:      "Total number of visitors that left a waiting queue",
	}, []string{labelRide})

	m.queueSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of visitors waiting per ride",
	}, []string{labelRide})

	m.historySize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_size",
		Help:      "Current number of records in the ride history",
	}, []string{labelRide})

	m.historySorts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_sorts_total",
		Help:      "Total number of history sorts performed",
	}, []string{labelRide})

	m.cycles = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycles_total",
		Help:      "Total number of completed ride cycles",
	}, []string{labelRide})

	m.ridersMoved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "riders_total",
		Help:      "Total number of visitors moved from queue to history by cycles",
	}, []string{labelRide})

	m.ridersPerCycle = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "riders_per_cycle",
		Help:      "Distribution of riders carried per cycle",
		Buckets:   m.riderBuckets,
	})

	m.recordsExported = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_exported_total",
		Help:      "Total number of history records written to CSV",
	}, []string{labelRide})

	m.recordsImported = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_imported_total",
		Help:      "Total number of history records read from CSV",
	}, []string{labelRide})

	m.recordsMalformed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_malformed_total",
		Help:      "Total number of CSV lines skipped during import",
	}, []string{labelRide})

	m.csvLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "csv_latency_milliseconds",
		Help:      "CSV export/import latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{labelOperation})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Total number of reported failures by component, ride and kind",
	}, []string{labelComponent, labelRide, labelKind})
}

// Queue Metrics Functions.

// RecordEnqueue increments the enqueue counter for a ride.
func RecordEnqueue(ride string) {
	globalManager.visitorsEnqueued.WithLabelValues(ride).Inc()
}

// RecordDequeue adds n to the dequeue counter for a ride.
func RecordDequeue(ride string, n int) {
	globalManager.visitorsDequeued.WithLabelValues(ride).Add(float64(n))
}

// UpdateQueueSize sets the current queue size for a ride.
func UpdateQueueSize(ride string, size int) {
	globalManager.queueSize.WithLabelValues(ride).Set(float64(size))
}

// History Metrics Functions.

// UpdateHistorySize sets the current history size for a ride.
func UpdateHistorySize(ride string, size int) {
	globalManager.historySize.WithLabelValues(ride).Set(float64(size))
}

// RecordHistorySort increments the sort counter for a ride.
func RecordHistorySort(ride string) {
	globalManager.historySorts.WithLabelValues(ride).Inc()
}

// Cycle Metrics Functions.

// RecordCycle records a completed cycle and the riders it carried.
func RecordCycle(ride string, riders int) {
	globalManager.cycles.WithLabelValues(ride).Inc()
	globalManager.ridersMoved.WithLabelValues(ride).Add(float64(riders))
	globalManager.ridersPerCycle.Observe(float64(riders))
}

// CSV Metrics Functions.

// RecordExport records exported records and the export latency.
func RecordExport(ride string, records int, latencyMs float64) {
	globalManager.recordsExported.WithLabelValues(ride).Add(float64(records))
	globalManager.csvLatency.WithLabelValues("export").Observe(latencyMs)
}

// RecordImport records imported and malformed records and the import latency.
func RecordImport(ride string, imported, malformed int, latencyMs float64) {
	globalManager.recordsImported.WithLabelValues(ride).Add(float64(imported))
	globalManager.recordsMalformed.WithLabelValues(ride).Add(float64(malformed))
	globalManager.csvLatency.WithLabelValues("import").Observe(latencyMs)
}

// Error Metrics Functions.

// RecordError records a reported failure with component, ride and kind labels.
func RecordError(component, ride, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, ride, kind).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
