package observability

import (
	"context"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ProbeBuildResource exposes buildResource to black-box tests.
func ProbeBuildResource(cfg Config) (*resource.Resource, error) {
	return buildResource(cfg)
}

// ProbeSamplerSpan reports whether the sampler selected for cfg records a root span.
func ProbeSamplerSpan(cfg Config) bool {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(selectSampler(cfg)))
	defer tp.Shutdown(context.Background()) //nolint:errcheck // test helper.

	_, span := tp.Tracer("probe").Start(context.Background(), "root")
	defer span.End()

	return span.SpanContext().IsSampled()
}
