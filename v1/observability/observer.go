// Package observability defines the hook through which clients in this module
// report the operations they perform.
//
// Clients accept an optional Observer. When one is configured, every completed
// operation is reported with its component, operation name, target resource,
// duration and error. The metrics package ships an Observer backed by
// Prometheus; tests usually plug in a recording observer.
//
// Example:
//
//	client, _ := casper.NewClient(cfg)
//	client.WithObserver(metricsClient)
package observability

import "time"

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the reporting client, e.g. "casper".
	Component string

	// Operation is the logical operation name, e.g. "create_collection".
	Operation string

	// Resource is the primary target of the operation (collection, matrix or PQ name).
	Resource string

	// SubResource carries secondary context such as a vector id.
	SubResource string

	// Transport is the wire used by the operation ("http" or "grpc").
	Transport string

	// Duration is the wall-clock time of the whole operation.
	Duration time.Duration

	// Error is the error returned to the caller, nil on success.
	Error error

	// Size is an operation specific volume: payload bytes for HTTP calls,
	// streamed float values for matrix uploads.
	Size int64

	// Metadata holds free-form extra attributes.
	Metadata map[string]interface{}
}

// Observer receives OperationContext notifications.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
