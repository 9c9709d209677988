package temporal

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// ErrDisabled is returned by Dial when Temporal is switched off by configuration.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED env")

// Options configures the Temporal client shared by the API and the worker.
type Options struct {
	Address   string
	Namespace string
	Disabled  bool
	Logger    *slog.Logger
	Tracer    trace.Tracer
}

// Dial connects a Temporal client with OpenTelemetry tracing and structured logging.
func Dial(opts Options) (client.Client, error) {
	if opts.Disabled {
		return nil, ErrDisabled
	}
	address := opts.Address
	if address == "" {
		address = client.DefaultHostPort
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = client.DefaultNamespace
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: opts.Tracer})
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	options := client.Options{
		HostPort:  address,
		Namespace: namespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
