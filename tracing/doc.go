// Package tracing wraps OpenTelemetry so that registry calls and HTTP requests
// can be traced without importing the upstream packages directly.
package tracing
