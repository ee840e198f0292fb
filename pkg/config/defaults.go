package config

// Ingest defaults.
const (
	DefaultIngestWorkers      = 8
	DefaultIngestMinRelevance = 2
)

// Layout defaults.
const (
	DefaultLayoutViewport = 1200.0
	DefaultLayoutMeasurer = MeasurerFont
)

// Stats defaults.
const DefaultStatsTimezone = "UTC"

// Render defaults.
const (
	DefaultRenderTheme          = "light"
	DefaultRenderGeometryFormat = "json"
	DefaultRenderColor          = true
)

// Logging defaults.
const (
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"
)

// Observability defaults.
const (
	DefaultObservabilityEnvironment = "dev"
	DefaultObservabilitySampleRatio = 1.0
)
