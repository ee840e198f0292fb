// Package observability provides OpenTelemetry tracing, metrics and structured
// logging for commitlens.
package observability

import "log/slog"

// AppMode identifies how the pipeline is being driven.
type AppMode string

const (
	// ModeCLI is the command line mode.
	ModeCLI AppMode = "cli"
	// ModeLibrary is used when the packages are embedded in another program.
	ModeLibrary AppMode = "library"
)

const (
	defaultServiceName        = "commitlens"
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the version of the running binary.
	ServiceVersion string

	// Environment is the deployment environment (e.g. "production", "dev").
	Environment string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables export; providers become no-op.
	OTLPEndpoint string

	// OTLPHeaders are additional gRPC metadata headers for the OTLP exporter.
	OTLPHeaders map[string]string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// SampleRatio is the trace sampling ratio (0.0 to 1.0). Zero samples every
	// root span.
	SampleRatio float64

	// PrometheusTextfile, when set, attaches a Prometheus reader whose registry
	// is written to this path by [Providers.WriteMetrics].
	PrometheusTextfile string

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// ShutdownTimeoutSec is the maximum seconds to wait for flush on shutdown.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
