package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns an isolated Prometheus registry, the client operation metrics and
// the HTTP server exposing them.
type Metrics struct {
	// Server serves the registry on /metrics.
	Server *http.Server

	// Registry holds every metric of this instance.
	Registry *prometheus.Registry

	registerer prometheus.Registerer
	namespace  string

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	streamedValues  *prometheus.CounterVec
}

var _ MetricsCollector = (*Metrics)(nil)

// NewMetrics creates the registry, registers the operation metrics and prepares
// (but does not start) the HTTP server.
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultMetricsAddress
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	registry := prometheus.NewRegistry()

	// Every metric of this instance carries service="<cfg.ServiceName>".
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		registerer: wrapped,
		namespace:  cfg.Namespace,
	}

	m.requestsTotal = createCounterVec(cfg.Namespace, "operations_total",
		"Total number of client operations by outcome", []string{"operation", "transport", "status"})
	m.requestDuration = createHistogramVec(cfg.Namespace, "operation_duration_seconds",
		"Duration of client operations in seconds", []string{"operation", "transport"}, prometheus.DefBuckets)
	m.streamedValues = createCounterVec(cfg.Namespace, "streamed_values_total",
		"Float values sent through matrix upload streams", []string{"matrix"})

	wrapped.MustRegister(m.requestsTotal, m.requestDuration, m.streamedValues)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return m
}
