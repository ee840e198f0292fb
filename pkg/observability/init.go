package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const (
	tracerName = "commitlens"
	meterName  = "commitlens"

	envTracesSampler    = "OTEL_TRACES_SAMPLER"
	envTracesSamplerArg = "OTEL_TRACES_SAMPLER_ARG"
)

// Providers holds the initialized observability providers.
type Providers struct {
	// Tracer is the named tracer for creating spans.
	Tracer trace.Tracer

	// Meter is the named meter for creating instruments.
	Meter metric.Meter

	// Logger is the context-aware structured logger.
	Logger *slog.Logger

	// Shutdown flushes all pending telemetry and releases resources.
	// Must be called before process exit.
	Shutdown func(ctx context.Context) error

	registry *prometheus.Registry
	textfile string
}

// WriteMetrics writes the Prometheus registry to the configured textfile.
func (p Providers) WriteMetrics() error {
	if p.registry == nil || p.textfile == "" {
		return ErrNoPrometheusRegistry
	}

	return WriteTextfile(p.textfile, p.registry)
}

// Init initializes tracing, metrics and structured logging. Without an OTLP
// endpoint or textfile the providers are no-op.
func Init(cfg Config) (Providers, error) {
	ctx := context.Background()

	res, err := buildResource(cfg)
	if err != nil {
		return Providers{}, err
	}

	tp, tpShutdown, err := buildTracerProvider(ctx, cfg, res)
	if err != nil {
		return Providers{}, fmt.Errorf("build tracer provider: %w", err)
	}

	mp, registry, mpShutdown, err := buildMeterProvider(ctx, cfg, res)
	if err != nil {
		shutdownErr := tpShutdown(ctx)

		return Providers{}, errors.Join(fmt.Errorf("build meter provider: %w", err), shutdownErr)
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(shutdownCtx context.Context) error {
		timeout := time.Duration(cfg.ShutdownTimeoutSec) * time.Second
		if timeout <= 0 {
			timeout = time.Duration(defaultShutdownTimeoutSec) * time.Second
		}

		deadlineCtx, cancel := context.WithTimeout(shutdownCtx, timeout)
		defer cancel()

		return errors.Join(tpShutdown(deadlineCtx), mpShutdown(deadlineCtx))
	}

	return Providers{
		Tracer:   tp.Tracer(tracerName),
		Meter:    mp.Meter(meterName),
		Logger:   NewLogger(cfg),
		Shutdown: shutdown,
		registry: registry,
		textfile: cfg.PrometheusTextfile,
	}, nil
}

// NewLogger builds the stderr logger described by cfg.
func NewLogger(cfg Config) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var inner slog.Handler
	if cfg.LogJSON {
		inner = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		inner = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	return slog.New(NewTracingHandler(inner, cfg.ServiceName, cfg.Environment, cfg.Mode))
}

func buildResource(cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}

	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}

	if cfg.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.Environment))
	}

	if cfg.Mode != "" {
		attrs = append(attrs, attribute.String("app.mode", string(cfg.Mode)))
	}

	res, err := resource.New(context.Background(), resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}

	return res, nil
}

type shutdownFunc func(ctx context.Context) error

func noopShutdown(_ context.Context) error { return nil }

func buildTracerProvider(
	ctx context.Context, cfg Config, res *resource.Resource,
) (trace.TracerProvider, shutdownFunc, error) {
	if cfg.OTLPEndpoint == "" {
		return nooptrace.NewTracerProvider(), noopShutdown, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}

	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	if len(cfg.OTLPHeaders) > 0 {
		opts = append(opts, otlptracegrpc.WithHeaders(cfg.OTLPHeaders))
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(selectSampler(cfg)),
	)

	return tp, tp.Shutdown, nil
}

func selectSampler(cfg Config) sdktrace.Sampler {
	if name := os.Getenv(envTracesSampler); name != "" {
		return samplerByName(name, os.Getenv(envTracesSamplerArg))
	}

	if cfg.SampleRatio > 0 {
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))
	}

	return sdktrace.ParentBased(sdktrace.AlwaysSample())
}

func samplerByName(name, arg string) sdktrace.Sampler {
	switch name {
	case "always_on":
		return sdktrace.AlwaysSample()
	case "always_off":
		return sdktrace.NeverSample()
	case "traceidratio":
		return sdktrace.TraceIDRatioBased(parseRatio(arg))
	case "parentbased_always_off":
		return sdktrace.ParentBased(sdktrace.NeverSample())
	case "parentbased_traceidratio":
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(parseRatio(arg)))
	default:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
}

func buildMeterProvider(
	ctx context.Context, cfg Config, res *resource.Resource,
) (metric.MeterProvider, *prometheus.Registry, shutdownFunc, error) {
	var (
		readers  []sdkmetric.Reader
		registry *prometheus.Registry
	)

	if cfg.OTLPEndpoint != "" {
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint)}

		if cfg.OTLPInsecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}

		if len(cfg.OTLPHeaders) > 0 {
			opts = append(opts, otlpmetricgrpc.WithHeaders(cfg.OTLPHeaders))
		}

		exporter, err := otlpmetricgrpc.New(ctx, opts...)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("create metric exporter: %w", err)
		}

		readers = append(readers, sdkmetric.NewPeriodicReader(exporter))
	}

	if cfg.PrometheusTextfile != "" {
		reader, reg, err := NewPrometheusReader()
		if err != nil {
			return nil, nil, nil, err
		}

		readers = append(readers, reader)
		registry = reg
	}

	if len(readers) == 0 {
		return noopmetric.NewMeterProvider(), nil, noopShutdown, nil
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}

	mp := sdkmetric.NewMeterProvider(opts...)

	return mp, registry, mp.Shutdown, nil
}

// ParseOTLPHeaders parses "key=value,key=value". Returns nil for empty or
// invalid input.
func ParseOTLPHeaders(raw string) map[string]string {
	if raw == "" {
		return nil
	}

	result := make(map[string]string)

	for pair := range strings.SplitSeq(raw, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}

		result[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	if len(result) == 0 {
		return nil
	}

	return result
}

func parseRatio(s string) float64 {
	ratio, err := strconv.ParseFloat(s, 64)
	if err != nil || s == "" {
		return 1.0
	}

	return ratio
}
