package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clearbroker_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "code"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clearbroker_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	AuthAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clearbroker_auth_attempts_total",
			Help: "Register/login attempts by outcome",
		},
		[]string{"action", "outcome"}, // register|login , ok|rejected|error|limited
	)

	CustomerEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clearbroker_customer_events_total",
			Help: "Customer lifecycle events written to the outbox",
		},
		[]string{"type"}, // created|status_changed
	)

	WorkerEventsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clearbroker_worker_events_total",
			Help: "Events handled by the ingest worker by result",
		},
		[]string{"result"}, // stored|skipped|failed
	)

	WorkerFlushDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clearbroker_worker_flush_duration_seconds",
			Help:    "Time spent writing one batch to ClickHouse",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
	)
)

// MustRegister registers every collector on r. Collectors already present
// on r are ignored so several servers can share the default registry.
func MustRegister(r prometheus.Registerer) {
	for _, c := range []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AuthAttemptsTotal,
		CustomerEventsTotal,
		WorkerEventsIngested,
		WorkerFlushDuration,
	} {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			panic(err)
		}
	}
}
