package omlflow

import (
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/omlflow/service/converter"
	"github.com/viant/omlflow/service/registry"
	"github.com/viant/omlflow/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures Service
type Option func(s *Service)

// WithConfig sets the service configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithFS sets the storage service used to load and save flows
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithBaseURL sets the location relative flow and description URLs resolve against
func WithBaseURL(URL string) Option {
	return func(s *Service) {
		s.baseURL = URL
	}
}

// WithFsOptions sets storage options used to download YAML descriptions, e.g. an embed.FS
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.fsOptions = options
	}
}

// WithConverter sets the model converter, YAML descriptions are converted by default
func WithConverter(converter converter.Converter) Option {
	return func(s *Service) {
		s.converter = converter
	}
}

// WithCaller sets the registry transport, overriding the configured registry URL
func WithCaller(caller registry.Caller) Option {
	return func(s *Service) {
		s.caller = caller
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter, e.g. OTLP.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
