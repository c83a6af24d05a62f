// Package metrics exposes Prometheus instrumentation for the registry:
// mutation outcomes on the ledgers and the realtime fan-out load.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MutationsTotal counts ledger mutations by operation and outcome.
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giftlist_mutations_total",
		Help: "Ledger mutations by operation and outcome.",
	}, []string{"operation", "outcome"})

	// RealtimeSubscribers tracks open realtime subscriptions per topic
	// in aggregate.
	RealtimeSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "giftlist_realtime_subscribers",
		Help: "Currently open realtime subscriptions.",
	})

	// RealtimeDropped counts invalidation events dropped because a
	// subscriber's buffer was full.
	RealtimeDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "giftlist_realtime_dropped_events_total",
		Help: "Realtime events dropped due to subscriber backpressure.",
	})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveMutation records one ledger mutation outcome.
func ObserveMutation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	MutationsTotal.WithLabelValues(operation, outcome).Inc()
}
