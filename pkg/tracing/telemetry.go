package tracing

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/multierr"

	"github.com/storacha/ramd/pkg/build"
	"github.com/storacha/ramd/pkg/config"
)

const (
	ServiceName           = "ramd"
	metricPublishInterval = 30 * time.Second
)

type shutdownFn func(context.Context) error

type Telemetry struct {
	Metrics     metric.MeterProvider
	Traces      trace.TracerProvider
	shutdownFns []shutdownFn
}

// NewTelemetry builds trace and metric providers exporting to
// cfg.OTLPEndpoint and installs them as the global otel providers. With no
// endpoint both providers are no-ops.
func NewTelemetry(ctx context.Context, cfg config.TracingConfig) (*Telemetry, error) {
	instanceID, err := os.Hostname()
	if err != nil || instanceID == "" {
		instanceID = "unknown"
	}

	rsrc, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(ServiceName),
		semconv.ServiceVersionKey.String(build.Version),
		semconv.ServiceInstanceIDKey.String(instanceID),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	metricsProvider, metricShutdown, err := newMeterProvider(ctx, rsrc, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	traceProvider, traceShutdown, err := newTracerProvider(ctx, rsrc, cfg)
	if err != nil {
		return nil, multierr.Combine(
			fmt.Errorf("failed to create trace provider: %w", err),
			metricShutdown(ctx),
		)
	}

	otel.SetMeterProvider(metricsProvider)
	otel.SetTracerProvider(traceProvider)

	return &Telemetry{
		Metrics:     metricsProvider,
		Traces:      traceProvider,
		shutdownFns: []shutdownFn{metricShutdown, traceShutdown},
	}, nil
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	for _, fn := range t.shutdownFns {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func noopShutdown(context.Context) error { return nil }

func newTracerProvider(ctx context.Context, res *resource.Resource, cfg config.TracingConfig) (trace.TracerProvider, shutdownFn, error) {
	if cfg.OTLPEndpoint == "" {
		return tracenoop.NewTracerProvider(), noopShutdown, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return provider, provider.Shutdown, nil
}

func newMeterProvider(ctx context.Context, res *resource.Resource, cfg config.TracingConfig) (metric.MeterProvider, shutdownFn, error) {
	if cfg.OTLPEndpoint == "" {
		return metricnoop.NewMeterProvider(), noopShutdown, nil
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create metrics exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricPublishInterval))),
	)
	return provider, provider.Shutdown, nil
}
