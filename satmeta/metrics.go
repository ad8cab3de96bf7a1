package satmeta

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "satmeta"

// Metrics holds the Prometheus collectors for product parsing
type Metrics struct {
	ProductsParsed *prometheus.CounterVec   // labels: format, outcome={success,error}
	ParseDuration  *prometheus.HistogramVec // labels: format
	BatchSize      prometheus.Histogram
	CacheLookups   *prometheus.CounterVec // labels: result={hit,miss}
}

func newMetrics() *Metrics {
	return &Metrics{
		ProductsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "products_parsed_total",
			Help:      "Products parsed by format and outcome.",
		}, []string{"format", "outcome"}),
		ParseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "parse_duration_seconds",
			Help:      "Time spent locating and parsing one product.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"format"}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "batch_size",
			Help:      "Number of products per batch.",
			Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_lookups_total",
			Help:      "Parse cache lookups by result.",
		}, []string{"result"}),
	}
}

// NewMetrics creates the parsing metrics and registers them with the default Prometheus registry
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.ProductsParsed, m.ParseDuration, m.BatchSize, m.CacheLookups)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as many as they need
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// ObserveParse records one parse attempt. A nil Metrics records nothing.
func (m *Metrics) ObserveParse(format Format, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.ProductsParsed.WithLabelValues(format.String(), outcome).Inc()
	m.ParseDuration.WithLabelValues(format.String()).Observe(elapsed.Seconds())
}

// ObserveCache records a parse cache lookup
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) observeBatch(size int) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(size))
}
