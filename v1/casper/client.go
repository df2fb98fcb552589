package casper

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/casper-db/casper-go/v1/observability"
)

const (
	transportHTTP = "http"
	transportGRPC = "grpc"
)

// Tracer starts spans around client operations. *tracer.Tracer from the
// tracer package satisfies it.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
	GetCarrier(ctx context.Context) map[string]string
}

// Client is the entry point to a Casper server. Unary operations go over
// HTTP, matrix uploads over a gRPC client stream.
//
// A Client is safe for concurrent use. It holds one HTTP client and one gRPC
// connection; Close releases both.
type Client struct {
	cfg    Config
	http   *httpExecutor
	stream *streamExecutor

	logger   Logger
	observer observability.Observer
	tracer   Tracer

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// NewClient validates cfg and builds a client. The gRPC connection is
// established lazily on the first upload, so no server needs to be reachable.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = nopLogger{}
	}

	stream, err := newStreamExecutor(&cfg, log)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:    cfg,
		http:   newHTTPExecutor(&cfg, log),
		stream: stream,
		logger: log,
	}

	log.Info("casper client created", nil, map[string]interface{}{
		"endpoint":     cfg.Endpoint,
		"grpc_address": cfg.GRPCAddress,
	})
	return c, nil
}

// WithObserver attaches an observer notified after every operation.
// It must be called before the client is shared between goroutines.
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// WithTracer wraps every operation in a span.
// It must be called before the client is shared between goroutines.
func (c *Client) WithTracer(t Tracer) *Client {
	c.tracer = t
	return c
}

// Close releases the gRPC connection and idle HTTP connections. In-flight
// uploads are aborted. Close is idempotent; later operations return
// ErrClientClosed.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.http.client.CloseIdleConnections()
		if err := c.stream.close(); err != nil {
			c.closeErr = fmt.Errorf("casper: close grpc connection: %w", err)
		}
		c.logger.Info("casper client closed", c.closeErr)
	})
	return c.closeErr
}

// operation identifies one facade call for tracing, metrics and logs.
type operation struct {
	name        string
	resource    string
	subResource string
	transport   string
}

// run executes fn with tracing, observation and logging around it. fn reports
// the operation size (request bytes or streamed values) for the observer.
func (c *Client) run(ctx context.Context, op operation, fn func(ctx context.Context) (int64, error)) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	if op.transport == "" {
		op.transport = transportHTTP
	}

	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.StartSpan(ctx, "casper."+op.name)
		defer span.End()
		c.tracer.SetAttributes(span, map[string]interface{}{
			"db.system":        "casper",
			"db.operation":     op.name,
			"casper.resource":  op.resource,
			"casper.transport": op.transport,
		})
	}

	start := time.Now()
	size, err := fn(ctx)
	duration := time.Since(start)

	if err != nil && span != nil {
		c.tracer.RecordErrorOnSpan(span, err)
	}
	c.observeOperation(op.name, op.resource, op.subResource, op.transport, duration, err, size, nil)

	if err != nil {
		c.logger.Debug("casper operation failed", err, map[string]interface{}{
			"operation": op.name,
			"resource":  op.resource,
			"kind":      KindOf(err).String(),
		})
	}
	return err
}

// carrier returns the trace context of ctx for outgoing stream metadata.
func (c *Client) carrier(ctx context.Context) map[string]string {
	if c.tracer == nil {
		return nil
	}
	return c.tracer.GetCarrier(ctx)
}
