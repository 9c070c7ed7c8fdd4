package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	QuoteErrorTypeNone       = "none"
	QuoteErrorTypeQuantity   = "quantity"
	QuoteErrorTypePostalCode = "postal_code"
	QuoteErrorTypeGeneric    = "generic"
)

const (
	OrderResultCreated = "created"
	OrderResultFailed  = "failed"
)

const (
	SyncResultSuccess = "success"
	SyncResultFailure = "failure"
	SyncResultSkipped = "skipped"
)

// Config carries the const labels stamped on every fuel metric.
type Config struct {
	ServiceName string
	Environment string
}

// FuelMetrics captures quote, order and tariff sync health signals.
type FuelMetrics struct {
	quoteRequests   *prometheus.CounterVec
	ordersCreated   *prometheus.CounterVec
	syncRuns        *prometheus.CounterVec
	syncLastSuccess prometheus.Gauge
	syncDuration    prometheus.Observer
}

var (
	fuelMetricsOnce sync.Once
	fuelMetrics     *FuelMetrics
)

// Fuel returns the singleton fuel metrics registry.
func Fuel() *FuelMetrics {
	return FuelWithConfig(Config{})
}

// FuelWithConfig returns the singleton fuel metrics registry using config labels.
func FuelWithConfig(cfg Config) *FuelMetrics {
	fuelMetricsOnce.Do(func() {
		fuelMetrics = newFuelMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return fuelMetrics
}

// ResetFuelMetricsForTest resets the fuel metrics singleton for tests.
func ResetFuelMetricsForTest() {
	fuelMetricsOnce = sync.Once{}
	fuelMetrics = nil
}

func newFuelMetrics(registerer prometheus.Registerer, cfg Config) *FuelMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "mazout"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	quoteRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "mazout_quote_requests_total",
		Help:        "Fuel quote requests by low-cardinality error type.",
		ConstLabels: constLabels,
	}, []string{"error_type"})
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "mazout_orders_total",
		Help:        "Fuel orders by result.",
		ConstLabels: constLabels,
	}, []string{"result"})
	syncRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "mazout_tariff_sync_runs_total",
		Help:        "Official tariff sync runs by result.",
		ConstLabels: constLabels,
	}, []string{"result"})
	syncLastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "mazout_tariff_sync_last_success_timestamp_seconds",
		Help:        "Unix time of the last successful tariff sync.",
		ConstLabels: constLabels,
	})
	syncDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "mazout_tariff_sync_duration_seconds",
		Help:        "Tariff sync latency including PDF fetch and parse.",
		Buckets:     []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		ConstLabels: constLabels,
	})

	registerer.MustRegister(
		quoteRequests,
		ordersCreated,
		syncRuns,
		syncLastSuccess,
		syncDuration,
	)

	return &FuelMetrics{
		quoteRequests:   quoteRequests,
		ordersCreated:   ordersCreated,
		syncRuns:        syncRuns,
		syncLastSuccess: syncLastSuccess,
		syncDuration:    syncDuration,
	}
}

// IncQuoteRequest increments the quote counter with its error classification.
func (m *FuelMetrics) IncQuoteRequest(errorType string) {
	if m == nil || m.quoteRequests == nil {
		return
	}
	m.quoteRequests.WithLabelValues(errorType).Inc()
}

// IncOrder increments the order counter for a result.
func (m *FuelMetrics) IncOrder(result string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(result).Inc()
}

// IncSyncRun increments the tariff sync counter for a result.
func (m *FuelMetrics) IncSyncRun(result string) {
	if m == nil || m.syncRuns == nil {
		return
	}
	m.syncRuns.WithLabelValues(result).Inc()
}

// SetSyncLastSuccess records the wall clock time of a successful sync.
func (m *FuelMetrics) SetSyncLastSuccess(t time.Time) {
	if m == nil || m.syncLastSuccess == nil {
		return
	}
	m.syncLastSuccess.Set(float64(t.Unix()))
}

// ObserveSyncDuration records the latency of one sync run.
func (m *FuelMetrics) ObserveSyncDuration(d time.Duration) {
	if m == nil || m.syncDuration == nil {
		return
	}
	m.syncDuration.Observe(d.Seconds())
}
