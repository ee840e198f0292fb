package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/Sumatoshi-tech/commitlens/pkg/dashboard"
	"github.com/Sumatoshi-tech/commitlens/pkg/layout"
	"github.com/Sumatoshi-tech/commitlens/pkg/plotpage"
)

// Chart titles shared by the HTML page and the terminal summary.
const (
	AreaTitle     = "Commit languages over time"
	PieTitle      = "Commit languages"
	WeekdaysTitle = "Commits over day of week"
	SizesTitle    = "Commits over LOC"

	pageTitle       = "commitlens"
	stackGroup      = "total"
	areaOpacity     = 0.8
	rotatedLabelDeg = 45
	timestampLayout = "2006-01-02 15:04"
	commitsAxis     = "Commits"
)

// HTML writes an interactive go-echarts page for d. Charts without enough data
// are replaced by a titled placeholder.
func HTML(w io.Writer, d dashboard.Dashboard, theme plotpage.Theme) error {
	cOpts := plotpage.NewChartOpts(theme)
	page := plotpage.NewPage(pageTitle, theme)

	rotate := 0.0
	if layout.ProfileFor(d.Viewport).RotateLabels {
		rotate = rotatedLabelDeg
	}

	axis := plotpage.AxisOpts{YLabel: commitsAxis, Rotate: rotate}

	page.Add(languageCharts(cOpts, d, axis)...)
	page.Add(statsCharts(cOpts, d, axis)...)

	return page.Render(w)
}

func languageCharts(cOpts *plotpage.ChartOpts, d dashboard.Dashboard, axis plotpage.AxisOpts) []components.Charter {
	if !d.HasData {
		return []components.Charter{
			plotpage.BuildEmptyChart(cOpts, AreaTitle, d.Placeholder),
			plotpage.BuildEmptyChart(cOpts, PieTitle, d.Placeholder),
		}
	}

	labels := make([]string, len(d.Stack.Timestamps))
	for i, ts := range d.Stack.Timestamps {
		labels[i] = ts.Format(timestampLayout)
	}

	series := make([]plotpage.LineSeries, 0, len(d.Stack.Layers))

	for _, l := range d.Stack.Layers {
		data := make([]plotpage.SeriesData, len(l.Values))
		for i, v := range l.Values {
			data[i] = v
		}

		series = append(series, plotpage.LineSeries{
			Name:        l.Language,
			Data:        data,
			Color:       l.Color,
			Stack:       stackGroup,
			AreaOpacity: areaOpacity,
		})
	}

	wedges := make([]plotpage.PieSlice, 0, len(d.Totals))
	for _, s := range d.Totals {
		wedges = append(wedges, plotpage.PieSlice{Name: s.Language, Value: s.Count, Color: s.Color})
	}

	return []components.Charter{
		plotpage.BuildLineChart(cOpts, AreaTitle, labels, series, axis, true),
		plotpage.BuildPieChart(cOpts, PieTitle, wedges),
	}
}

func statsCharts(cOpts *plotpage.ChartOpts, d dashboard.Dashboard, axis plotpage.AxisOpts) []components.Charter {
	if !d.HasStats {
		return []components.Charter{
			plotpage.BuildEmptyChart(cOpts, WeekdaysTitle, dashboard.Placeholder),
			plotpage.BuildEmptyChart(cOpts, SizesTitle, dashboard.Placeholder),
		}
	}

	weekdays := []plotpage.LineSeries{{Name: commitsAxis, Data: seriesData(d.Stats.Weekdays.Counts())}}
	sizes := []plotpage.BarSeries{{Name: commitsAxis, Data: seriesData(d.Stats.Sizes.Counts())}}

	return []components.Charter{
		plotpage.BuildLineChart(cOpts, WeekdaysTitle, d.Stats.Weekdays.Labels(), weekdays, axis, false),
		plotpage.BuildBarChart(cOpts, SizesTitle, d.Stats.Sizes.Labels(), sizes, axis),
	}
}

func seriesData(counts []int) []plotpage.SeriesData {
	out := make([]plotpage.SeriesData, len(counts))
	for i, c := range counts {
		out[i] = c
	}

	return out
}
