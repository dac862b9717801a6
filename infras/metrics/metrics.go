package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "giftlist"

// Reservation outcomes.
const (
	OutcomeReserved = "reserved"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics owns a private registry with the service collectors.
type Metrics struct {
	registry     *prometheus.Registry
	reservations *prometheus.CounterVec
	requests     *prometheus.HistogramVec
}

// New registers the Go, process and service collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return NewWithRegistry(reg)
}

// NewWithRegistry registers the service collectors on reg. A nil registry yields a no-op Metrics.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		return &Metrics{}
	}

	reservations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_total",
		Help:      "Reservation attempts by outcome.",
	}, []string{"outcome"})
	requests := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(reservations, requests)

	return &Metrics{
		registry:     reg,
		reservations: reservations,
		requests:     requests,
	}
}

// IncReservation counts one reservation attempt.
func (m *Metrics) IncReservation(outcome string) {
	if m == nil || m.reservations == nil {
		return
	}

	m.reservations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveRequest records the duration of one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}

	m.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}

	return value
}
