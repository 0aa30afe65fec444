package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.30.0"
)

type Configuration struct {
	Enabled  bool
	Endpoint string
	Insecure bool
}

type Tracing struct {
	provider *sdktrace.TracerProvider
}

// New configures the global tracer provider with an OTLP HTTP exporter.
// When tracing is disabled it returns a component whose Stop is a no-op.
func New(ctx context.Context, config Configuration) (*Tracing, error) {
	if !config.Enabled {
		return &Tracing{}, nil
	}
	options := []otlptracehttp.Option{}
	if config.Endpoint != "" {
		options = append(options, otlptracehttp.WithEndpoint(config.Endpoint))
	}
	if config.Insecure {
		options = append(options, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("fail to create the OTLP trace exporter: %w", err)
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("slo-server")))
	if err != nil {
		return nil, fmt.Errorf("fail to create the tracing resource: %w", err)
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res))
	otel.SetTracerProvider(provider)
	return &Tracing{
		provider: provider,
	}, nil
}

func (t *Tracing) Stop() error {
	if t.provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return t.provider.Shutdown(ctx)
}
