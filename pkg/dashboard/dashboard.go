// Package dashboard assembles statistics, aggregates and chart geometry for one
// analysed commit set. It decides which charts have enough data to be laid out.
package dashboard

import (
	"time"

	"github.com/Sumatoshi-tech/commitlens/pkg/aggregate"
	"github.com/Sumatoshi-tech/commitlens/pkg/commit"
	"github.com/Sumatoshi-tech/commitlens/pkg/layout"
	"github.com/Sumatoshi-tech/commitlens/pkg/stats"
)

// Placeholder is shown instead of a chart that lacks data.
const Placeholder = "There is not enough data available to visualize the chart. Please try again later."

// DefaultViewport is the viewport width used when none is given.
const DefaultViewport = 1200

// defaultMeasurer approximates proportional text when no measurer is supplied.
var defaultMeasurer = layout.FixedMeasurer{Ratio: 0.6}

// Options configures Build.
type Options struct {
	Viewport float64
	Measurer layout.TextMeasurer

	// Location is the time zone of the weekday and time-of-day statistics.
	Location *time.Location
}

// Dashboard is the full, serializable result of one analysis.
type Dashboard struct {
	Viewport float64 `json:"viewport" yaml:"viewport"`

	Commits    int `json:"commits" yaml:"commits"`
	Classified int `json:"classified" yaml:"classified"`

	HasStats bool           `json:"has_stats" yaml:"has_stats"`
	Stats    stats.Snapshot `json:"stats" yaml:"stats"`

	HasData       bool                    `json:"has_data" yaml:"has_data"`
	Placeholder   string                  `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Stack         aggregate.Stack         `json:"stack" yaml:"stack"`
	Totals        []aggregate.Slice       `json:"totals" yaml:"totals"`
	LegendEntries []aggregate.LegendEntry `json:"legend_entries" yaml:"legend_entries"`

	Legend   *layout.Legend    `json:"legend,omitempty" yaml:"legend,omitempty"`
	Area     *layout.AreaChart `json:"area,omitempty" yaml:"area,omitempty"`
	Pie      *layout.PieChart  `json:"pie,omitempty" yaml:"pie,omitempty"`
	Weekdays *layout.LineChart `json:"weekdays,omitempty" yaml:"weekdays,omitempty"`
	Sizes    *layout.BarChart  `json:"sizes,omitempty" yaml:"sizes,omitempty"`

	measurer layout.TextMeasurer
}

// Build derives the dashboard from the raw records and their classification
// results. results must be the completed, index-aligned batch; a shorter or
// longer slice disables the language charts.
func Build(records []*commit.Record, results []*commit.Classified, opts Options) Dashboard {
	if opts.Viewport <= 0 {
		opts.Viewport = DefaultViewport
	}

	if opts.Measurer == nil {
		opts.Measurer = defaultMeasurer
	}

	d := Dashboard{
		Commits:    len(records),
		Classified: commit.CountSuccesses(results),
		Stats:      stats.Compute(records, stats.Options{Location: opts.Location}),
		HasData:    aggregate.HasData(results, len(records)),
		measurer:   opts.Measurer,
	}

	d.HasStats = d.Stats.Commits > 0

	if d.HasData {
		d.Stack = aggregate.StackCumulative(results)
		d.Totals = aggregate.Totals(results)
		d.LegendEntries = aggregate.Legend(results)
	} else {
		d.Placeholder = Placeholder
	}

	return d.Relayout(opts.Viewport)
}

// Relayout returns a copy of d with geometry recomputed for viewport. The
// underlying data is shared and left untouched.
func (d Dashboard) Relayout(viewport float64) Dashboard {
	if viewport <= 0 {
		viewport = DefaultViewport
	}

	if d.measurer == nil {
		d.measurer = defaultMeasurer
	}

	d.Viewport = viewport
	d.Legend, d.Area, d.Pie, d.Weekdays, d.Sizes = nil, nil, nil, nil, nil

	if d.HasData {
		legend := layout.LayoutLegend(d.LegendEntries, viewport)
		area := layout.LayoutArea(d.Stack, viewport, d.measurer)
		pie := layout.LayoutPie(d.Totals, viewport)

		d.Legend, d.Area, d.Pie = &legend, &area, &pie
	}

	if d.HasStats {
		weekdays := layout.LayoutWeekdays(d.Stats.Weekdays, viewport)
		sizes := layout.LayoutSizes(d.Stats.Sizes, viewport)

		d.Weekdays, d.Sizes = &weekdays, &sizes
	}

	return d
}

// Facts returns the fun-fact sentences, or nil when no commit was resolved.
func (d Dashboard) Facts() []string {
	if !d.HasStats {
		return nil
	}

	return d.Stats.Facts()
}
