package sched

import (
	"time"

	"github.com/nanokern/sched/service/trace"
	"github.com/nanokern/sched/tracing"
)

// Option customises a Service.
type Option func(s *Service)

// WithTraceService sets the diagnostic event service. Without it (and
// without WithTraceHandler) no diagnostic events are emitted.
func WithTraceService(service *trace.Service) Option {
	return func(s *Service) { s.traceService = service }
}

// WithTraceHandler creates a default trace service delivering events to
// the supplied handlers.
func WithTraceHandler(handlers ...trace.Handler) Option {
	return func(s *Service) {
		s.traceService = trace.New(trace.WithHandler(handlers...))
	}
}

// WithAgingInterval sets the default period between aging passes used
// by StartAging when the caller passes a non-positive interval.
func WithAgingInterval(interval time.Duration) Option {
	return func(s *Service) { s.agingInterval = interval }
}

// WithTracing configures OpenTelemetry span export. If outputFile is
// empty the stdout exporter is used; otherwise spans are written to the
// supplied file path. Safe to call multiple times – the first successful
// initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}
