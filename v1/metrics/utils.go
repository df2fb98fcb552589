package metrics

import (
	"time"

	"github.com/casper-db/casper-go/v1/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ObserveOperation records an operation reported by an instrumented client.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	status := StatusOK
	if ctx.Error != nil {
		status = StatusError
	}
	m.requestsTotal.WithLabelValues(ctx.Operation, ctx.Transport, status).Inc()
	m.requestDuration.WithLabelValues(ctx.Operation, ctx.Transport).Observe(ctx.Duration.Seconds())

	if ctx.Transport == "grpc" && ctx.Size > 0 {
		m.AddStreamedValues(ctx.Resource, ctx.Size)
	}
}

func (m *Metrics) IncrementRequests(operation, transport, status string) {
	m.requestsTotal.WithLabelValues(operation, transport, status).Inc()
}

func (m *Metrics) RecordRequestDuration(start time.Time, operation, transport string) {
	m.requestDuration.WithLabelValues(operation, transport).Observe(time.Since(start).Seconds())
}

func (m *Metrics) AddStreamedValues(matrix string, values int64) {
	m.streamedValues.WithLabelValues(matrix).Add(float64(values))
}

func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(m.namespace, name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(m.namespace, name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
