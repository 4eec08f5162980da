// Package otel wires the matching engine's three mutating operations
// (AddOrder, CancelOrder, ModifyOrder) into OpenTelemetry tracing and
// metrics. It has no network dependency: spans and metrics go through
// the stdout exporters to a caller-supplied writer (discarded when none
// is given) rather than being shipped to a collector, since the engine
// core has no transport layer to carry an OTLP exporter over.
package otel

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/sjanney/orderbook/pkg/otel"

// ServiceOrderBook is the resource's service.name; the engine runs as
// a single in-process component, not a constellation of services.
const ServiceOrderBook = "orderbook"

var (
	bookTracer         trace.Tracer
	bookTracerProvider *sdktrace.TracerProvider
	bookMeterProvider  *sdkmetric.MeterProvider
)

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceVersion string
	// Writer receives rendered spans and metric exports. Defaults to
	// io.Discard if nil, which disables export but keeps providers
	// live so instrumentation calls remain cheap no-ops.
	Writer io.Writer
	// MetricInterval is how often accumulated metrics are exported.
	MetricInterval time.Duration
}

// Init installs a stdout-backed tracer and meter provider and returns
// a shutdown function the caller must defer.
func Init(cfg Config) (func(context.Context) error, error) {
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "0.1.0"
	}
	if cfg.MetricInterval == 0 {
		cfg.MetricInterval = 5 * time.Second
	}
	writer := cfg.Writer
	if writer == nil {
		writer = io.Discard
	}

	resource, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewSchemaless(
			semconv.ServiceName(ServiceOrderBook),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("merge resource: %w", err)
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(writer))
	if err != nil {
		return nil, fmt.Errorf("new trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	bookTracerProvider = tp
	bookTracer = tp.Tracer(ServiceOrderBook)

	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(writer))
	if err != nil {
		return nil, fmt.Errorf("new metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(cfg.MetricInterval))),
		sdkmetric.WithResource(resource),
	)
	otel.SetMeterProvider(mp)
	bookMeterProvider = mp

	return func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return err
		}
		return mp.Shutdown(ctx)
	}, nil
}

// Tracer returns the order book's tracer, or a no-op tracer if Init
// has not run.
func Tracer() trace.Tracer {
	if bookTracer != nil {
		return bookTracer
	}
	return otel.Tracer(instrumentationName)
}

// TracerProvider returns the configured tracer provider, falling back
// to the global one.
func TracerProvider() trace.TracerProvider {
	if bookTracerProvider != nil {
		return bookTracerProvider
	}
	return otel.GetTracerProvider()
}

// Meter returns a meter scoped to the order book instrumentation,
// backed by the configured provider if Init has run.
func Meter() metric.Meter {
	if bookMeterProvider != nil {
		return bookMeterProvider.Meter(instrumentationName)
	}
	return otel.GetMeterProvider().Meter(instrumentationName)
}

// ResetForTesting clears the package-level providers.
func ResetForTesting() {
	bookTracer = nil
	bookTracerProvider = nil
	bookMeterProvider = nil
}

// InitForTesting installs a caller-supplied tracer, bypassing Init.
func InitForTesting(tracer trace.Tracer) {
	bookTracer = tracer
}
