package telemetry

import (
	"os"
	"strconv"
	"strings"
)

const defaultServiceName = "msos"

// Settings is the resolved export configuration. It is built from the
// environment once per Init call; Options applied on top of it are the only
// code-level overrides.
type Settings struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string

	// OTLP endpoint and transport. Protocol is "grpc" or "http/protobuf";
	// Headers carry collector credentials such as an Authorization token.
	Endpoint string
	Protocol string
	Insecure bool
	Headers  map[string]string

	// Sampler name per OTEL_TRACES_SAMPLER, with the ratio already parsed
	// and clamped from OTEL_TRACES_SAMPLER_ARG.
	Sampler      string
	SamplerRatio float64

	// Extra resource attributes from OTEL_RESOURCE_ATTRIBUTES.
	Attributes map[string]string
}

func settingsFromEnv() *Settings {
	return &Settings{
		Enabled:        boolEnv("OTEL_ENABLED"),
		ServiceName:    envOr("OTEL_SERVICE_NAME", defaultServiceName),
		ServiceVersion: envOr("OTEL_SERVICE_VERSION", "unknown"),
		Endpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Protocol:       envOr("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
		Insecure:       boolEnv("OTEL_EXPORTER_OTLP_INSECURE"),
		Headers:        parsePairs(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")),
		Sampler:        os.Getenv("OTEL_TRACES_SAMPLER"),
		SamplerRatio:   ratioEnv("OTEL_TRACES_SAMPLER_ARG"),
		Attributes:     parsePairs(os.Getenv("OTEL_RESOURCE_ATTRIBUTES")),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string) bool {
	return strings.EqualFold(os.Getenv(key), "true")
}

// ratioEnv parses a sampling ratio and clamps it to [0, 1]. A missing or
// malformed value means full sampling.
func ratioEnv(key string) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return 1
	}
	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1
	}
	return min(max(ratio, 0), 1)
}

// parsePairs splits "k1=v1,k2=v2" into a map. Only the first '=' separates
// key from value, so values may themselves contain '='; entries without a
// key or without any '=' are skipped.
func parsePairs(raw string) map[string]string {
	pairs := make(map[string]string)
	for _, entry := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		pairs[key] = strings.TrimSpace(value)
	}
	return pairs
}
