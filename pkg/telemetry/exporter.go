package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"google.golang.org/grpc/credentials/insecure"
)

// newExporter builds the OTLP span exporter for the configured protocol.
// Anything other than an explicit http variant goes over gRPC.
func newExporter(ctx context.Context, s *Settings) (*otlptrace.Exporter, error) {
	switch strings.ToLower(s.Protocol) {
	case "http", "http/protobuf":
		return newHTTPExporter(ctx, s)
	default:
		return newGRPCExporter(ctx, s)
	}
}

// splitEndpoint strips the scheme, which neither exporter client accepts in
// its endpoint option. An explicit http:// scheme implies plaintext even
// when the insecure flag is unset.
func splitEndpoint(s *Settings) (endpoint string, plaintext bool) {
	switch {
	case strings.HasPrefix(s.Endpoint, "http://"):
		return strings.TrimPrefix(s.Endpoint, "http://"), true
	case strings.HasPrefix(s.Endpoint, "https://"):
		return strings.TrimPrefix(s.Endpoint, "https://"), s.Insecure
	}
	return s.Endpoint, s.Insecure
}

func newGRPCExporter(ctx context.Context, s *Settings) (*otlptrace.Exporter, error) {
	var opts []otlptracegrpc.Option

	endpoint, plaintext := splitEndpoint(s)
	if endpoint != "" {
		opts = append(opts, otlptracegrpc.WithEndpoint(endpoint))
	}
	if plaintext {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
	}
	if len(s.Headers) > 0 {
		opts = append(opts, otlptracegrpc.WithHeaders(s.Headers))
	}

	return otlptracegrpc.New(ctx, opts...)
}

func newHTTPExporter(ctx context.Context, s *Settings) (*otlptrace.Exporter, error) {
	var opts []otlptracehttp.Option

	endpoint, plaintext := splitEndpoint(s)
	if endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if plaintext {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(s.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(s.Headers))
	}

	return otlptracehttp.New(ctx, opts...)
}
