// Package metrics holds the Prometheus collectors for annals.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/morikuni/failure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"annals/internal/domain"
	"annals/internal/service"
)

const namespace = "annals"

// Counter is the subset of the entry service the entries gauge reads
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Store metrics
	StoreOperations *prometheus.CounterVec

	// Entry change events by type
	EntryEvents *prometheus.CounterVec
}

// New creates the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		StoreOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of entry store operations by result",
		}, []string{"op", "result"}),

		EntryEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entry_events_total",
			Help:      "Total number of entry change events by type",
		}, []string{"type"}),
	}
}

// RegisterEntryGauge exposes the current entry count, read at scrape time
func (m *Metrics) RegisterEntryGauge(c Counter) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Number of stored historical entries",
		},
		func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			n, err := c.Count(ctx)
			if err != nil {
				return -1
			}
			return float64(n)
		},
	))
}

// ObserveStoreOp implements service.Observer
func (m *Metrics) ObserveStoreOp(op string, err error) {
	m.StoreOperations.WithLabelValues(op, resultLabel(err)).Inc()
}

// ObserveEvent is an event bus subscriber
func (m *Metrics) ObserveEvent(e service.Event) {
	m.EntryEvents.WithLabelValues(string(e.Type)).Inc()
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	code, ok := failure.CodeOf(err)
	if !ok {
		return "error"
	}
	switch code {
	case domain.NotFound:
		return "not_found"
	case domain.ValidationError:
		return "invalid"
	}
	return "error"
}
