package metrics

import (
	"time"

	"github.com/casper-db/casper-go/v1/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector is the contract implemented by *Metrics.
type MetricsCollector interface {
	observability.Observer

	// IncrementRequests counts one finished operation.
	IncrementRequests(operation, transport, status string)

	// RecordRequestDuration observes the time elapsed since start for an operation.
	RecordRequestDuration(start time.Time, operation, transport string)

	// AddStreamedValues counts float values pushed through matrix upload streams.
	AddStreamedValues(matrix string, values int64)

	// CreateCounter creates and registers a CounterVec.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates and registers a HistogramVec.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec
}
