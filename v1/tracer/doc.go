// Package tracer configures OpenTelemetry tracing for the Casper client.
//
// NewClient installs a global TracerProvider (optionally exporting over
// OTLP/HTTP) and the W3C trace-context and baggage propagators. The returned
// *Tracer is attached to a client with client.WithTracer; every facade call then
// runs inside a span named after the operation, with the error recorded on
// failure. Matrix uploads forward the trace context to the server as gRPC
// metadata built from GetCarrier.
package tracer
