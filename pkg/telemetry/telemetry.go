// Package telemetry wires the process into an OpenTelemetry collector.
//
// Tracing is off unless OTEL_ENABLED=true. The remaining knobs follow the
// standard OTEL_* environment variables (endpoint, protocol, headers,
// sampler, resource attributes), so deployments configure the collector the
// same way they would for any other instrumented binary. Init installs the
// global tracer provider; instrumented packages obtain tracers through
// otel.Tracer and never import this package.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc flushes pending spans and stops the tracer provider.
type ShutdownFunc func(ctx context.Context) error

func nopShutdown(context.Context) error { return nil }

// Option adjusts the settings after the environment has been read.
type Option func(*Settings)

// WithService overrides the service identity stamped on every span. Empty
// values keep whatever the environment provided.
func WithService(name, version string) Option {
	return func(s *Settings) {
		if name != "" {
			s.ServiceName = name
		}
		if version != "" {
			s.ServiceVersion = version
		}
	}
}

// Enabled reports whether tracing is switched on in the environment.
func Enabled() bool {
	return boolEnv("OTEL_ENABLED")
}

// Init installs the global tracer provider and propagators. When tracing is
// disabled it leaves the default no-op provider in place and hands back a
// shutdown that does nothing, so callers can defer the result either way.
func Init(ctx context.Context, opts ...Option) (ShutdownFunc, error) {
	settings := settingsFromEnv()
	for _, opt := range opts {
		opt(settings)
	}

	if !settings.Enabled {
		return nopShutdown, nil
	}

	res, err := buildResource(ctx, settings)
	if err != nil {
		return nopShutdown, err
	}

	exporter, err := newExporter(ctx, settings)
	if err != nil {
		return nopShutdown, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(newSampler(settings)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
