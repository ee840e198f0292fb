// Package commands implements the commitlens subcommands.
package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/commitlens/pkg/commit"
	"github.com/Sumatoshi-tech/commitlens/pkg/config"
	"github.com/Sumatoshi-tech/commitlens/pkg/dashboard"
	"github.com/Sumatoshi-tech/commitlens/pkg/ingest"
	"github.com/Sumatoshi-tech/commitlens/pkg/langdetect"
	"github.com/Sumatoshi-tech/commitlens/pkg/layout"
	"github.com/Sumatoshi-tech/commitlens/pkg/observability"
	"github.com/Sumatoshi-tech/commitlens/pkg/render"
	"github.com/Sumatoshi-tech/commitlens/pkg/version"
)

const (
	stdinPath      = "-"
	fixedRatio     = 0.6
	outputFilePerm = 0o600
)

// AnalyzeCommand holds the flags of the analyze subcommand.
type AnalyzeCommand struct {
	configPath     string
	width          float64
	workers        int
	timezone       string
	theme          string
	htmlPath       string
	svgDir         string
	geometryPath   string
	geometryFormat string
	noColor        bool
	strict         bool
}

// NewAnalyzeCommand creates the analyze subcommand.
func NewAnalyzeCommand() *cobra.Command {
	ac := &AnalyzeCommand{}

	cmd := &cobra.Command{
		Use:   "analyze [commits.json|-]",
		Short: "Classify commits and lay out the dashboard charts",
		Long: `Read a JSON array of repository commit payloads, classify the language of
each commit, compute the commit statistics and lay out every chart.

Examples:
  commitlens analyze commits.json
  commitlens analyze --width 800 --svg-dir charts commits.json
  gh api repos/OWNER/REPO/commits/SHA | jq -s . | commitlens analyze -`,
		Args: cobra.MaximumNArgs(1),
		RunE: ac.run,
	}

	cmd.Flags().StringVar(&ac.configPath, "config", "", "Config file (default: .commitlens.yaml in . or $HOME)")
	cmd.Flags().Float64Var(&ac.width, "width", config.DefaultLayoutViewport, "Viewport width used for chart layout")
	cmd.Flags().IntVar(&ac.workers, "workers", config.DefaultIngestWorkers, "Concurrent classifications (0 = use CPU count)")
	cmd.Flags().StringVar(&ac.timezone, "timezone", config.DefaultStatsTimezone, "IANA time zone for weekday and time-of-day buckets")
	cmd.Flags().StringVar(&ac.theme, "theme", config.DefaultRenderTheme, "HTML theme: light, dark")
	cmd.Flags().StringVar(&ac.htmlPath, "html", "", "Write an interactive HTML dashboard to this file")
	cmd.Flags().StringVar(&ac.svgDir, "svg-dir", "", "Write one SVG per chart into this directory")
	cmd.Flags().StringVar(&ac.geometryPath, "geometry", "", "Write the chart geometry to this file (- for stdout)")
	cmd.Flags().StringVar(&ac.geometryFormat, "geometry-format", config.DefaultRenderGeometryFormat, "Geometry format: json, yaml")
	cmd.Flags().BoolVar(&ac.noColor, "no-color", false, "Disable colored summary output")
	cmd.Flags().BoolVar(&ac.strict, "strict", false, "Validate the payload against the commit schema before decoding")

	return cmd
}

func (ac *AnalyzeCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := ac.loadConfig(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	providers, err := observability.Init(observabilityConfig(cfg, verbose))
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.WithoutCancel(ctx))
		if shutdownErr != nil {
			providers.Logger.Warn("telemetry shutdown failed", slog.Any("error", shutdownErr))
		}
	}()

	records, err := ac.readRecords(cmd, args)
	if err != nil {
		return err
	}

	d, err := analyze(ctx, cfg, providers, records)
	if err != nil {
		return err
	}

	if err := ac.writeOutputs(cmd, cfg, d, quiet); err != nil {
		return err
	}

	if cfg.Observability.PrometheusTextfile != "" {
		if err := providers.WriteMetrics(); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

// loadConfig reads the config file and environment, then applies any flag the
// user set explicitly.
func (ac *AnalyzeCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(ac.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("width") {
		cfg.Layout.Viewport = ac.width
	}

	if flags.Changed("workers") {
		cfg.Ingest.Workers = ac.workers
	}

	if flags.Changed("timezone") {
		cfg.Stats.Timezone = ac.timezone
	}

	if flags.Changed("theme") {
		cfg.Render.Theme = ac.theme
	}

	if flags.Changed("html") {
		cfg.Render.HTML = ac.htmlPath
	}

	if flags.Changed("svg-dir") {
		cfg.Render.SVGDir = ac.svgDir
	}

	if flags.Changed("geometry") {
		cfg.Render.Geometry = ac.geometryPath
	}

	if flags.Changed("geometry-format") {
		cfg.Render.GeometryFormat = ac.geometryFormat
	}

	if ac.noColor {
		cfg.Render.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func observabilityConfig(cfg *config.Config, verbose bool) observability.Config {
	obs := observability.DefaultConfig()
	obs.ServiceVersion = version.Version
	obs.Environment = cfg.Observability.Environment
	obs.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	obs.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Observability.OTLPHeaders)
	obs.OTLPInsecure = cfg.Observability.OTLPInsecure
	obs.SampleRatio = cfg.Observability.SampleRatio
	obs.PrometheusTextfile = cfg.Observability.PrometheusTextfile
	obs.LogJSON = cfg.Logging.Format == config.LogFormatJSON

	level, err := cfg.LogLevel()
	if err == nil {
		obs.LogLevel = level
	}

	if verbose {
		obs.LogLevel = slog.LevelDebug
	}

	return obs
}

func (ac *AnalyzeCommand) readRecords(cmd *cobra.Command, args []string) ([]*commit.Record, error) {
	path := stdinPath
	if len(args) > 0 {
		path = args[0]
	}

	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return nil, err
	}

	if ac.strict {
		if err := commit.Validate(data); err != nil {
			return nil, err
		}
	}

	return commit.Decode(bytes.NewReader(data))
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil
}

// analyze classifies records and builds the dashboard.
func analyze(ctx context.Context, cfg *config.Config, providers observability.Providers, records []*commit.Record) (dashboard.Dashboard, error) {
	logger := providers.Logger

	metrics, err := observability.NewIngestMetrics(providers.Meter)
	if err != nil {
		return dashboard.Dashboard{}, fmt.Errorf("create ingest metrics: %w", err)
	}

	classifier := langdetect.NewClassifier(langdetect.WithMinRelevance(cfg.Ingest.MinRelevance))

	start := time.Now()

	results, err := ingest.Run(ctx, classifier, records,
		ingest.WithWorkers(cfg.Ingest.Workers),
		ingest.WithLogger(logger),
		ingest.WithTracer(providers.Tracer),
		ingest.WithMetrics(metrics),
	)
	if err != nil {
		return dashboard.Dashboard{}, err
	}

	measurer, err := newMeasurer(cfg.Layout.Measurer)
	if err != nil {
		return dashboard.Dashboard{}, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return dashboard.Dashboard{}, err
	}

	d := dashboard.Build(records, results, dashboard.Options{
		Viewport: cfg.Layout.Viewport,
		Measurer: measurer,
		Location: loc,
	})

	logger.InfoContext(ctx, "analysis complete",
		slog.Int("commits", d.Commits),
		slog.Int("classified", d.Classified),
		slog.Bool("has_data", d.HasData),
		slog.Duration("elapsed", time.Since(start)),
	)

	return d, nil
}

func newMeasurer(kind string) (layout.TextMeasurer, error) {
	if kind == config.MeasurerFixed {
		return layout.FixedMeasurer{Ratio: fixedRatio}, nil
	}

	return layout.NewFontMeasurer()
}

func (ac *AnalyzeCommand) writeOutputs(cmd *cobra.Command, cfg *config.Config, d dashboard.Dashboard, quiet bool) error {
	out := cmd.OutOrStdout()

	if !quiet && cfg.Render.Geometry != stdinPath {
		if err := render.Summary(out, d, cfg.Render.Color); err != nil {
			return err
		}
	}

	if cfg.Render.HTML != "" {
		var buf bytes.Buffer
		if err := render.HTML(&buf, d, cfg.Theme()); err != nil {
			return err
		}

		if err := os.WriteFile(cfg.Render.HTML, buf.Bytes(), outputFilePerm); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
	}

	if cfg.Render.SVGDir != "" {
		if _, err := render.ExportFiles(cfg.Render.SVGDir, d); err != nil {
			return err
		}
	}

	switch cfg.Render.Geometry {
	case "":
	case stdinPath:
		return render.WriteGeometry(out, d, cfg.Render.GeometryFormat)
	default:
		var buf bytes.Buffer
		if err := render.WriteGeometry(&buf, d, cfg.Render.GeometryFormat); err != nil {
			return err
		}

		if err := os.WriteFile(cfg.Render.Geometry, buf.Bytes(), outputFilePerm); err != nil {
			return fmt.Errorf("write geometry: %w", err)
		}
	}

	return nil
}
