package observability

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
)

// ErrNoPrometheusRegistry is returned by WriteMetrics when no Prometheus reader
// was configured.
var ErrNoPrometheusRegistry = errors.New("prometheus textfile export is not configured")

// NewPrometheusReader creates an OTel Prometheus exporter bound to a fresh
// registry. The exporter is a metric reader to attach to a MeterProvider.
func NewPrometheusReader() (*promexporter.Exporter, *prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return exporter, registry, nil
}

// WriteTextfile writes everything g gathers to path in the Prometheus text
// exposition format, suitable for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	err := prometheus.WriteToTextfile(path, g)
	if err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
