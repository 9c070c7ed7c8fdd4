package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestIncQuoteRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newFuelMetrics(registry, Config{
		ServiceName: "mazout",
		Environment: "test",
	})

	metrics.IncQuoteRequest(QuoteErrorTypeNone)
	metrics.IncQuoteRequest(QuoteErrorTypeQuantity)
	metrics.IncQuoteRequest(QuoteErrorTypeQuantity)

	got := testutil.ToFloat64(metrics.quoteRequests.WithLabelValues(QuoteErrorTypeQuantity))
	if got != 2 {
		t.Fatalf("expected quantity error count 2, got %v", got)
	}
}

func TestSetSyncLastSuccess(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newFuelMetrics(registry, Config{
		ServiceName: "mazout",
		Environment: "test",
	})

	at := time.Unix(1700000000, 0)
	metrics.SetSyncLastSuccess(at)

	got := testutil.ToFloat64(metrics.syncLastSuccess)
	if got != 1700000000 {
		t.Fatalf("expected last success timestamp 1700000000, got %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *FuelMetrics
	metrics.IncQuoteRequest(QuoteErrorTypeGeneric)
	metrics.IncOrder(OrderResultFailed)
	metrics.IncSyncRun(SyncResultFailure)
	metrics.SetSyncLastSuccess(time.Now())
	metrics.ObserveSyncDuration(time.Second)
}
