package metrics

import (
	"strings"
	"time"

	"github.com/jacobe603/quote-builder/internal/config"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultApplied  = "applied"
	ResultNoop     = "noop"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// QuoteMetrics captures quote mutation outcomes. A nil *QuoteMetrics is a
// valid no-op recorder.
type QuoteMetrics struct {
	operations      *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	snapshotVersion prometheus.Gauge
	lineItems       prometheus.Gauge
}

// New registers the quote instruments with the default registerer.
func New(cfg config.Config) (*QuoteMetrics, error) {
	return newQuoteMetrics(prometheus.DefaultRegisterer, cfg)
}

func newQuoteMetrics(registerer prometheus.Registerer, cfg config.Config) (*QuoteMetrics, error) {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "quote-builder"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &QuoteMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "quote_operations_total",
			Help:        "Quote operations by name and result.",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "quote_operation_rejections_total",
			Help:        "Rejected quote operations by low-cardinality reason.",
			ConstLabels: constLabels,
		}, []string{"operation", "reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "quote_operation_duration_seconds",
			Help:        "Quote operation latency including snapshot publish.",
			Buckets:     []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),
		snapshotVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "quote_snapshot_version",
			Help:        "Version of the currently published quote snapshot.",
			ConstLabels: constLabels,
		}),
		lineItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "quote_line_items",
			Help:        "Line items in the currently published quote snapshot.",
			ConstLabels: constLabels,
		}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.rejections, m.duration, m.snapshotVersion, m.lineItems} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveOperation records one finished operation.
func (m *QuoteMetrics) ObserveOperation(operation, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Reject counts a rejected operation. reason must be a sentinel error code,
// never free text.
func (m *QuoteMetrics) Reject(operation, reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(operation, reason).Inc()
}

// Published records the shape of a newly published snapshot.
func (m *QuoteMetrics) Published(version uint64, lineItems int) {
	if m == nil {
		return
	}
	m.snapshotVersion.Set(float64(version))
	m.lineItems.Set(float64(lineItems))
}
