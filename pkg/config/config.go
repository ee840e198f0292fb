// Package config provides configuration loading and validation for commitlens.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/commitlens/pkg/plotpage"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers        = errors.New("ingest workers must not be negative")
	ErrInvalidRelevance      = errors.New("minimum relevance must not be negative")
	ErrInvalidViewport       = errors.New("layout viewport must be positive")
	ErrInvalidMeasurer       = errors.New("unknown text measurer")
	ErrInvalidTimezone       = errors.New("invalid stats timezone")
	ErrInvalidTheme          = errors.New("invalid render theme")
	ErrInvalidGeometryFormat = errors.New("invalid geometry format")
	ErrInvalidLogLevel       = errors.New("invalid log level")
	ErrInvalidLogFormat      = errors.New("invalid log format")
	ErrInvalidSampleRatio    = errors.New("sample ratio must be within [0, 1]")
)

// Text measurers selectable for chart layout.
const (
	MeasurerFont  = "font"
	MeasurerFixed = "fixed"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	configName = ".commitlens"
	envPrefix  = "COMMITLENS"
)

// Config holds all configuration for commitlens.
type Config struct {
	Ingest        IngestConfig        `mapstructure:"ingest"`
	Layout        LayoutConfig        `mapstructure:"layout"`
	Stats         StatsConfig         `mapstructure:"stats"`
	Render        RenderConfig        `mapstructure:"render"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// IngestConfig holds classification settings.
type IngestConfig struct {
	// Workers bounds concurrent classifications; zero means GOMAXPROCS.
	Workers      int `mapstructure:"workers"`
	MinRelevance int `mapstructure:"min_relevance"`
}

// LayoutConfig holds chart geometry settings.
type LayoutConfig struct {
	Viewport float64 `mapstructure:"viewport"`
	Measurer string  `mapstructure:"measurer"`
}

// StatsConfig holds statistics settings.
type StatsConfig struct {
	// Timezone is an IANA name used for weekday and time-of-day buckets.
	Timezone string `mapstructure:"timezone"`
}

// RenderConfig holds output settings. Empty paths disable that output.
type RenderConfig struct {
	Theme          string `mapstructure:"theme"`
	HTML           string `mapstructure:"html"`
	SVGDir         string `mapstructure:"svg_dir"`
	Geometry       string `mapstructure:"geometry"`
	GeometryFormat string `mapstructure:"geometry_format"`
	Color          bool   `mapstructure:"color"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ObservabilityConfig holds telemetry export settings.
type ObservabilityConfig struct {
	Environment        string  `mapstructure:"environment"`
	OTLPEndpoint       string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders        string  `mapstructure:"otlp_headers"`
	OTLPInsecure       bool    `mapstructure:"otlp_insecure"`
	SampleRatio        float64 `mapstructure:"sample_ratio"`
	PrometheusTextfile string  `mapstructure:"prometheus_textfile"`
}

// LoadConfig loads configuration from file and environment variables. An
// empty configPath searches for .commitlens.yaml in the working directory and
// then the home directory; a missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("ingest.workers", DefaultIngestWorkers)
	viperCfg.SetDefault("ingest.min_relevance", DefaultIngestMinRelevance)

	viperCfg.SetDefault("layout.viewport", DefaultLayoutViewport)
	viperCfg.SetDefault("layout.measurer", DefaultLayoutMeasurer)

	viperCfg.SetDefault("stats.timezone", DefaultStatsTimezone)

	viperCfg.SetDefault("render.theme", DefaultRenderTheme)
	viperCfg.SetDefault("render.html", "")
	viperCfg.SetDefault("render.svg_dir", "")
	viperCfg.SetDefault("render.geometry", "")
	viperCfg.SetDefault("render.geometry_format", DefaultRenderGeometryFormat)
	viperCfg.SetDefault("render.color", DefaultRenderColor)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.format", DefaultLoggingFormat)

	viperCfg.SetDefault("observability.environment", DefaultObservabilityEnvironment)
	viperCfg.SetDefault("observability.otlp_endpoint", "")
	viperCfg.SetDefault("observability.otlp_headers", "")
	viperCfg.SetDefault("observability.otlp_insecure", false)
	viperCfg.SetDefault("observability.sample_ratio", DefaultObservabilitySampleRatio)
	viperCfg.SetDefault("observability.prometheus_textfile", "")
}

// Validate checks every setting and returns the first violation.
func (c *Config) Validate() error {
	if c.Ingest.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Ingest.Workers)
	}

	if c.Ingest.MinRelevance < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRelevance, c.Ingest.MinRelevance)
	}

	if c.Layout.Viewport <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidViewport, c.Layout.Viewport)
	}

	if c.Layout.Measurer != MeasurerFont && c.Layout.Measurer != MeasurerFixed {
		return fmt.Errorf("%w: %q", ErrInvalidMeasurer, c.Layout.Measurer)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := plotpage.ParseTheme(c.Render.Theme); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTheme, err)
	}

	if f := c.Render.GeometryFormat; f != "json" && f != "yaml" {
		return fmt.Errorf("%w: %q", ErrInvalidGeometryFormat, f)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	if f := c.Logging.Format; f != LogFormatText && f != LogFormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, f)
	}

	if r := c.Observability.SampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, r)
	}

	return nil
}

// Location resolves the stats timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Stats.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTimezone, c.Stats.Timezone, err)
	}

	return loc, nil
}

// LogLevel parses the logging level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return level, nil
}

// Theme returns the parsed render theme.
func (c *Config) Theme() plotpage.Theme {
	theme, err := plotpage.ParseTheme(c.Render.Theme)
	if err != nil {
		return plotpage.ThemeLight
	}

	return theme
}
