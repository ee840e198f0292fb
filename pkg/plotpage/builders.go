package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	defaultChartWidth  = "100%"
	defaultChartHeight = "500px"
	pieRadius          = "60%"
	pieLabelFormat     = "{b}: {c}"
)

// SeriesData represents a single numeric value in a chart series.
type SeriesData any

// BarSeries defines the properties and data for a single bar chart series.
type BarSeries struct {
	Name  string
	Data  []SeriesData
	Color string // Optional, uses theme if empty.
}

// LineSeries defines the properties and data for a single line chart series.
type LineSeries struct {
	Name        string
	Data        []SeriesData
	Color       string  // Optional, uses theme if empty.
	Stack       string  // Optional, stack grouping.
	AreaOpacity float32 // Optional, area opacity for area charts.
}

// PieSlice is one named value of a pie chart.
type PieSlice struct {
	Name  string
	Value int
	Color string
}

// AxisOpts are the per-chart axis settings.
type AxisOpts struct {
	YLabel string
	Rotate float64
}

// BuildBarChart constructs a fully configured go-echarts Bar chart using ChartOpts.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildBarChart(cOpts *ChartOpts, title string, labels []string, series []BarSeries, axis AxisOpts) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(defaultChartWidth, defaultChartHeight)),
		charts.WithTitleOpts(cOpts.Title(title, "")),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.XAxis("", axis.Rotate)),
		charts.WithYAxisOpts(cOpts.YAxis(axis.YLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	bar.SetXAxis(labels)

	for _, s := range series {
		barData := make([]opts.BarData, len(s.Data))
		for i, v := range s.Data {
			barData[i] = opts.BarData{Value: v}
		}

		color := s.Color
		if color == "" {
			color = cOpts.SeriesColor()
		}

		bar.AddSeries(s.Name, barData,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top", Color: cOpts.TextColor()}),
		)
	}

	return bar
}

// BuildLineChart constructs a fully configured go-echarts Line chart using ChartOpts.
// Series sharing a Stack are stacked; a positive AreaOpacity fills below the line.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildLineChart(cOpts *ChartOpts, title string, labels []string, series []LineSeries, axis AxisOpts, zoom bool) *charts.Line {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(cOpts.Init(defaultChartWidth, defaultChartHeight)),
		charts.WithTitleOpts(cOpts.Title(title, "")),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.XAxis("", axis.Rotate)),
		charts.WithYAxisOpts(cOpts.YAxis(axis.YLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	}

	if zoom {
		global = append(global, charts.WithDataZoomOpts(cOpts.DataZoom()...))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(global...)
	line.SetXAxis(labels)

	for _, s := range series {
		lineData := make([]opts.LineData, len(s.Data))
		for i, v := range s.Data {
			lineData[i] = opts.LineData{Value: v}
		}

		color := s.Color
		if color == "" {
			color = cOpts.SeriesColor()
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
		}

		if s.Stack != "" {
			seriesOpts = append(seriesOpts, charts.WithLineChartOpts(opts.LineChart{Stack: s.Stack}))
		}

		if s.AreaOpacity > 0 {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(s.AreaOpacity)}))
		}

		line.AddSeries(s.Name, lineData, seriesOpts...)
	}

	return line
}

// BuildPieChart constructs a go-echarts Pie chart whose labels read "name: value".
// If cOpts is nil, DefaultChartOpts() is used.
func BuildPieChart(cOpts *ChartOpts, title string, slices []PieSlice) *charts.Pie {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(defaultChartWidth, defaultChartHeight)),
		charts.WithTitleOpts(cOpts.Title(title, "")),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	data := make([]opts.PieData, 0, len(slices))
	for _, s := range slices {
		d := opts.PieData{Name: s.Name, Value: s.Value}
		if s.Color != "" {
			d.ItemStyle = &opts.ItemStyle{Color: s.Color}
		}

		data = append(data, d)
	}

	pie.AddSeries(title, data).
		SetSeriesOptions(
			charts.WithPieChartOpts(opts.PieChart{Radius: pieRadius}),
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: pieLabelFormat,
				Color:     cOpts.TextColor(),
			}),
		)

	return pie
}

// BuildEmptyChart returns a titled chart carrying only a message, used when
// there is nothing to plot.
func BuildEmptyChart(cOpts *ChartOpts, title, message string) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(defaultChartWidth, "120px")),
		charts.WithTitleOpts(cOpts.Title(title, message)),
	)

	return bar
}
