package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oauth2_device_grpc"

// Metrics holds the service's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	rpcs             *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
	flowsActive      prometheus.Gauge
	flowsFinished    *prometheus.CounterVec
	flowEvents       *prometheus.CounterVec
	rateLimited      prometheus.Counter
}

// NewMetrics creates and registers every collector
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream identity provider requests by endpoint and HTTP status (0 when unreachable)",
		}, []string{"endpoint", "status"}),

		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream identity provider request latency",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"endpoint"}),

		rpcs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "Completed gRPC calls by method and status code",
		}, []string{"method", "code"}),

		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "gRPC call duration; Authenticate spans the whole device flow",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}, []string{"method"}),

		flowsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "device_flows_active",
			Help:      "Device flows currently polling",
		}),

		flowsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "device_flows_finished_total",
			Help:      "Device flows by outcome",
		}, []string{"outcome"}),

		flowEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "device_flow_events_total",
			Help:      "Progress events delivered to callers",
		}, []string{"kind"}),

		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Authenticate calls rejected by the rate limiter",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.upstreamRequests,
		m.upstreamDuration,
		m.rpcs,
		m.rpcDuration,
		m.flowsActive,
		m.flowsFinished,
		m.flowEvents,
		m.rateLimited,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveUpstream records one upstream round trip
func (m *Metrics) ObserveUpstream(endpoint string, statusCode int, elapsed time.Duration) {
	m.upstreamRequests.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveRPC records a completed gRPC call
func (m *Metrics) ObserveRPC(method, code string, elapsed time.Duration) {
	m.rpcs.WithLabelValues(method, code).Inc()
	m.rpcDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// FlowStarted marks a device flow as polling
func (m *Metrics) FlowStarted() {
	m.flowsActive.Inc()
}

// FlowFinished records the outcome of a started flow
func (m *Metrics) FlowFinished(outcome string) {
	m.flowsActive.Dec()
	m.flowsFinished.WithLabelValues(outcome).Inc()
}

// EventSent counts a progress event delivered to a caller
func (m *Metrics) EventSent(kind string) {
	m.flowEvents.WithLabelValues(kind).Inc()
}

// RateLimited counts a rejected Authenticate call
func (m *Metrics) RateLimited() {
	m.rateLimited.Inc()
}
