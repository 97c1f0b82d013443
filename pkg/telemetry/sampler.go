package telemetry

import (
	"strings"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newSampler maps the OTEL_TRACES_SAMPLER name onto an SDK sampler. The
// parentbased_ prefix wraps the root sampler in parent-based sampling;
// unknown or empty names sample everything so traces stay complete unless
// explicitly throttled.
func newSampler(s *Settings) sdktrace.Sampler {
	name, parentBased := strings.CutPrefix(s.Sampler, "parentbased_")

	var root sdktrace.Sampler
	switch name {
	case "always_off":
		root = sdktrace.NeverSample()
	case "traceidratio":
		root = sdktrace.TraceIDRatioBased(s.SamplerRatio)
	default:
		root = sdktrace.AlwaysSample()
	}

	if parentBased {
		return sdktrace.ParentBased(root)
	}
	return root
}
