package telemetry

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

const (
	ServiceName    = "duskboard"
	ServiceVersion = "1.0.0"
)

// InitTracer installs the global tracer provider and propagator.
// Spans are exported to stdout when export is true; otherwise they are
// sampled but discarded. The returned function flushes and stops the provider.
func InitTracer(export bool) (func(context.Context) error, error) {
	var w io.Writer = io.Discard
	if export {
		w = os.Stdout
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	// W3C trace context, so the bot can join traces if it ever propagates them
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
