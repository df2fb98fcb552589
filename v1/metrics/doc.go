// Package metrics exposes Prometheus metrics for Casper client operations.
//
// *Metrics owns an isolated registry (no collisions with other libraries that
// use the default registry) and implements observability.Observer, so it can be
// attached directly to a client:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "search-api"})
//	client.WithObserver(m)
//	go m.Server.ListenAndServe()
//
// Registered series (namespace casper_client by default):
//
//   - operations_total{operation,transport,status}
//   - operation_duration_seconds{operation,transport}
//   - streamed_values_total{matrix}
//
// Every series carries the constant label service="<ServiceName>". Runtime,
// process and build-info collectors are added when EnableDefaultCollectors is set.
//
// With fx, FXModule provides *Metrics, MetricsCollector and
// observability.Observer and serves /metrics while the application runs. It
// requires a metrics.Config and a logger.Logger in the container.
//
// Configuration:
//
//	METRICS_ADDRESS=:9090
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true
//	METRICS_NAMESPACE=casper_client
//	METRICS_SERVICE_NAME=search-api
package metrics
