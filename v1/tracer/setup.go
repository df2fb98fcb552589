package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// instrumentationName names the tracer used for all spans of this module.
const instrumentationName = "github.com/casper-db/casper-go"

// Tracer wraps an OpenTelemetry TracerProvider and offers the span helpers used
// by the Casper client. It is safe for concurrent use.
type Tracer struct {
	provider *sdktrace.TracerProvider
}

// NewClient builds a TracerProvider, installs it and the W3C propagators globally
// and returns a Tracer using it.
//
// Example:
//
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "search-api", AppEnv: "prod"})
//	if err != nil {
//	    return err
//	}
//	client.WithTracer(t)
func NewClient(cfg Config) (*Tracer, error) {
	var options []sdktrace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient())
		if err != nil {
			return nil, fmt.Errorf("tracer: create OTLP exporter: %w", err)
		}
		options = append(options, sdktrace.WithBatcher(exporter))
	}

	options = append(options, sdktrace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	return newWithOptions(options...), nil
}

func newWithOptions(options ...sdktrace.TracerProviderOption) *Tracer {
	tp := sdktrace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &Tracer{provider: tp}
}

// NewFromProvider wraps an existing provider without touching the global
// otel state.
func NewFromProvider(tp *sdktrace.TracerProvider) *Tracer {
	return &Tracer{provider: tp}
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
