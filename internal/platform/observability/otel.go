package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Instruments bundles the process-wide logger, tracer provider and meter provider.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Exporter kinds accepted in OTEL_TRACES_EXPORTER.
const (
	exporterOTLP   = "otlp"
	exporterStdout = "stdout"
	exporterNone   = "none"
)

type exportSettings struct {
	kind     string
	endpoint string
	insecure bool
}

func exportSettingsFromEnv() exportSettings {
	kind := strings.ToLower(strings.TrimSpace(os.Getenv("OTEL_TRACES_EXPORTER")))
	switch kind {
	case exporterStdout, exporterNone:
	default:
		kind = exporterOTLP
	}
	return exportSettings{
		kind:     kind,
		endpoint: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		insecure: os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0",
	}
}

// Init installs the storefront logger as slog default and registers global
// tracer and meter providers. shutdown flushes whatever is buffered.
func Init(ctx context.Context, serviceName string, level slog.Level) (*Instruments, func(context.Context) error, error) {
	logger := newLogger(level).With(slog.String("service", serviceName))
	slog.SetDefault(logger)

	res, err := serviceResource(ctx, serviceName)
	if err != nil {
		return nil, nil, err
	}

	var flushers []func(context.Context) error

	tracerOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	exporter, err := spanExporter(ctx, exportSettingsFromEnv(), logger)
	if err != nil {
		return nil, nil, err
	}
	if exporter != nil {
		tracerOpts = append(tracerOpts, sdktrace.WithBatcher(exporter))
	}
	tracerProvider := sdktrace.NewTracerProvider(tracerOpts...)
	flushers = append(flushers, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	// Counters are read on demand; nothing pushes them yet.
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewManualReader()),
	)
	flushers = append(flushers, meterProvider.Shutdown)
	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(flushers) - 1; i >= 0; i-- {
			errs = append(errs, flushers[i](ctx))
		}
		return errors.Join(errs...)
	}
	return &Instruments{Logger: logger, TracerProvider: tracerProvider, MeterProvider: meterProvider}, shutdown, nil
}

// Tracer falls back to the global provider when instruments are absent.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter falls back to a noop meter when instruments are absent.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

// ParseLevel maps LOG_LEVEL values. Unknown values fall back to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}))
}

func serviceResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	environment := strings.TrimSpace(os.Getenv("ENVIRONMENT"))
	if environment == "" {
		environment = "local"
	}
	return resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("deployment.environment", environment),
		),
	)
}

// spanExporter returns nil when export is switched off. A broken OTLP setup
// degrades to stdout instead of failing startup.
func spanExporter(ctx context.Context, settings exportSettings, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	switch settings.kind {
	case exporterNone:
		return nil, nil
	case exporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	var opts []otlptracehttp.Option
	if settings.endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(settings.endpoint))
	}
	if settings.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		logger.Warn("otlp trace exporter unavailable, using stdout", slog.String("error", err.Error()))
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	return exporter, nil
}
