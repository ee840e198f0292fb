package plotpage_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/commitlens/pkg/plotpage"
)

func TestBuildBarChart(t *testing.T) {
	t.Parallel()

	opts := plotpage.NewChartOpts(plotpage.ThemeLight)
	labels := []string{"0-10", "11-30", "31-50"}
	series := []plotpage.BarSeries{
		{Name: "Commits", Data: []plotpage.SeriesData{4, 2, 0}},
	}

	chart := plotpage.BuildBarChart(opts, "Commits over LOC", labels, series, plotpage.AxisOpts{YLabel: "Commits", Rotate: 45})
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
	require.Equal(t, "Commits", chart.MultiSeries[0].Name)
}

func TestBuildBarChart_NilOpts(t *testing.T) {
	t.Parallel()

	chart := plotpage.BuildBarChart(nil, "", []string{"a"}, []plotpage.BarSeries{{Name: "Data", Data: []plotpage.SeriesData{1}}}, plotpage.AxisOpts{})
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
}

func TestBuildLineChart_Stacked(t *testing.T) {
	t.Parallel()

	series := []plotpage.LineSeries{
		{Name: "Go", Data: []plotpage.SeriesData{1, 2, 2}, Color: "#00ADD8", Stack: "total", AreaOpacity: 0.8},
		{Name: "Python", Data: []plotpage.SeriesData{0, 0, 1}, Color: "#3572A5", Stack: "total", AreaOpacity: 0.8},
	}

	chart := plotpage.BuildLineChart(plotpage.DefaultChartOpts(), "Languages", []string{"d1", "d2", "d3"}, series, plotpage.AxisOpts{}, true)
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 2)
	assert.Equal(t, "Go", chart.MultiSeries[0].Name)
	assert.Equal(t, "Python", chart.MultiSeries[1].Name)
}

func TestBuildPieChart(t *testing.T) {
	t.Parallel()

	chart := plotpage.BuildPieChart(nil, "Languages", []plotpage.PieSlice{
		{Name: "TypeScript", Value: 2, Color: "#3178c6"},
		{Name: "Python", Value: 1},
	})
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
	assert.Equal(t, "Languages", chart.MultiSeries[0].Name)
}

func TestPage_Render(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("commitlens", plotpage.ThemeDark)
	page.Add(
		plotpage.BuildEmptyChart(nil, "Languages", "No data"),
		plotpage.BuildPieChart(nil, "Languages", []plotpage.PieSlice{{Name: "Go", Value: 1}}),
	)
	assert.Equal(t, 2, page.Len())

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))
	assert.Contains(t, buf.String(), "<title>commitlens</title>")
	assert.Contains(t, buf.String(), "echarts")
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	th, err := plotpage.ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, plotpage.ThemeDark, th)

	_, err = plotpage.ParseTheme("solarized")
	require.ErrorIs(t, err, plotpage.ErrUnknownTheme)

	assert.Equal(t, "#1565c0", plotpage.GetThemeConfig(plotpage.ThemeLight).Series)
	assert.Equal(t, plotpage.GetThemeConfig(plotpage.ThemeLight), plotpage.GetThemeConfig("other"))
}
