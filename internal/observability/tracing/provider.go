package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Setup installs a global tracer provider sampling ratio of the root
// traces (child spans follow their parent) and the W3C trace-context
// propagator. No exporter is attached: spans exist so that trace IDs reach
// logs and the X-Trace-Id header. The returned function flushes and stops
// the provider.
func Setup(service, version string, ratio float64, opts ...sdktrace.TracerProviderOption) (func(context.Context) error, error) {
	if ratio < 0 || ratio > 1 {
		return nil, fmt.Errorf("trace sample ratio must be between 0 and 1, got %v", ratio)
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", service),
		attribute.String("service.version", version),
	)
	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}, opts...)
	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown, nil
}
