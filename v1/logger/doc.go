// Package logger provides structured logging for the Casper client and its tools.
//
// It wraps Uber's zap with a small, map-based API shared by every package in this
// module:
//
//	log.Info("collection created", nil, map[string]interface{}{"collection": name})
//	log.Error("upload failed", err, map[string]interface{}{"matrix": name})
//
// # Architecture
//
//   - Logger interface: the contract other packages depend on
//   - LoggerClient struct: zap-backed implementation returned by NewLoggerClient
//   - FXModule: provides both for fx applications and syncs on shutdown
//
// # Tracing Integration
//
// With EnableTracing set, the *WithContext methods read the OpenTelemetry span
// from the context and add trace_id and span_id to the entry, so client logs can
// be joined with the spans produced by the tracer package.
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	LOGGER_ENABLE_TRACING=true      # add trace/span ids
//	LOGGER_SERVICE_NAME=my-service  # "service" field, default casper-client
//	LOGGER_DEVELOPMENT=true         # console encoder with colors
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package logger
