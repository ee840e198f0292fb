package layout_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/commitlens/pkg/aggregate"
	"github.com/Sumatoshi-tech/commitlens/pkg/commit"
	"github.com/Sumatoshi-tech/commitlens/pkg/layout"
	"github.com/Sumatoshi-tech/commitlens/pkg/stats"
)

var halfEm = layout.FixedMeasurer{Ratio: 0.5}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func sampleResults() []*commit.Classified {
	return []*commit.Classified{
		{Language: "TypeScript", Color: "#3178c6", Timestamp: day(1)},
		nil,
		{Language: "TypeScript", Color: "#3178c6", Timestamp: day(2)},
		{Language: "Python", Color: "#3572A5", Timestamp: day(3)},
	}
}

func TestLayoutArea(t *testing.T) {
	t.Parallel()

	stack := aggregate.StackCumulative(sampleResults())
	c := layout.LayoutArea(stack, 1300, halfEm)

	assert.InDelta(t, 1200.0, c.Width, 1e-9)
	assert.InDelta(t, 600.0, c.Height, 1e-9)

	// Widest y label is "3.0": three runes of 6px, plus the wide padding.
	assert.InDelta(t, 27.0, c.Margins.Left, 1e-9)
	assert.InDelta(t, 27.0, c.YAxis.Offset, 1e-9)
	assert.InDelta(t, 1200.0, c.YAxis.GridTo, 1e-9)

	require.Len(t, c.Layers, 2)
	ts, py := c.Layers[0], c.Layers[1]
	assert.Equal(t, "TypeScript", ts.Language)
	assert.Equal(t, "rgba(49, 120, 198, 0.8)", ts.Fill)
	assert.Equal(t, "Python", py.Title)

	require.Len(t, ts.Upper, 3)
	assert.InDelta(t, 27.0, ts.Upper[0].X, 1e-9)
	assert.InDelta(t, 613.5, ts.Upper[1].X, 1e-9)
	assert.InDelta(t, 1200.0, ts.Upper[2].X, 1e-9)

	// y maps [0, 3] onto [579, 6].
	assert.InDelta(t, 388.0, ts.Upper[0].Y, 1e-9)
	assert.InDelta(t, 579.0, ts.Lower[0].Y, 1e-9)
	assert.InDelta(t, 6.0, py.Upper[2].Y, 1e-9)
	assert.InDelta(t, ts.Upper[2].Y, py.Lower[2].Y, 1e-9)

	assert.True(t, strings.HasPrefix(ts.Path, "M27,388L613.5,197L1200,197L1200,579"))
	assert.True(t, strings.HasSuffix(ts.Path, "L27,579Z"))

	assert.Zero(t, c.XAxis.Rotation)
	assert.Equal(t, layout.AnchorMiddle, c.XAxis.Anchor)
	assert.InDelta(t, 579.0, c.XAxis.Offset, 1e-9)
	assert.NotEmpty(t, c.XAxis.Ticks)
}

func TestLayoutArea_MeasurerFallback(t *testing.T) {
	t.Parallel()

	zero := layout.MeasureFunc(func(string, layout.FontSpec) float64 { return 0 })
	c := layout.LayoutArea(aggregate.StackCumulative(sampleResults()), 1000, zero)

	assert.InDelta(t, 29.0, c.Margins.Left, 1e-9)
	assert.InDelta(t, 10.0, c.Margins.Right, 1e-9)
	assert.InDelta(t, 36.0, c.Margins.Bottom, 1e-9)
}

func TestLayoutArea_UsesProfileFont(t *testing.T) {
	t.Parallel()

	var fonts []layout.FontSpec

	spy := layout.MeasureFunc(func(_ string, f layout.FontSpec) float64 {
		fonts = append(fonts, f)

		return 1
	})

	layout.LayoutArea(aggregate.StackCumulative(sampleResults()), 350, spy)
	require.NotEmpty(t, fonts)

	for _, f := range fonts {
		assert.InDelta(t, 10.0, f.Size, 1e-9)
	}
}

func TestLayoutArea_Idempotent(t *testing.T) {
	t.Parallel()

	stack := aggregate.StackCumulative(sampleResults())

	assert.Equal(t, layout.LayoutArea(stack, 800, halfEm), layout.LayoutArea(stack, 800, halfEm))
	assert.Equal(t, layout.LayoutPie(aggregate.Totals(sampleResults()), 800), layout.LayoutPie(aggregate.Totals(sampleResults()), 800))
}

func TestLayoutPie(t *testing.T) {
	t.Parallel()

	totals := []aggregate.Slice{
		{Language: "Go", Color: "#00ADD8", Count: 1},
		{Language: "TypeScript", Color: "#3178c6", Count: 3},
	}

	c := layout.LayoutPie(totals, 1300)
	assert.Equal(t, layout.Point{X: 600, Y: 300}, c.Center)
	assert.InDelta(t, 299.0, c.Radius, 1e-9)

	require.Len(t, c.Slices, 2)
	first, second := c.Slices[0], c.Slices[1]

	assert.Equal(t, "TypeScript", first.Language)
	assert.Equal(t, "TypeScript: 3", first.Title)
	assert.InDelta(t, 0.0, first.StartAngle, 1e-9)
	assert.InDelta(t, 1.5*math.Pi, first.EndAngle, 1e-9)
	assert.InDelta(t, 2*math.Pi, second.EndAngle, 1e-9)

	assert.InDelta(t, 105.71, first.Centroid.X, 0.01)
	assert.InDelta(t, 105.71, first.Centroid.Y, 0.01)

	assert.True(t, strings.HasPrefix(first.Path, "M0,-299A299,299,0,1,1,"))
	assert.True(t, strings.HasSuffix(first.Path, "L0,0Z"))
	assert.True(t, strings.HasPrefix(second.Path, "M-299,0A299,299,0,0,1,"))

	// Input order is left untouched.
	assert.Equal(t, "Go", totals[0].Language)
}

func TestLayoutPie_SingleSliceAndTies(t *testing.T) {
	t.Parallel()

	single := layout.LayoutPie([]aggregate.Slice{{Language: "Go", Color: "#00ADD8", Count: 1234}}, 1300)
	require.Len(t, single.Slices, 1)
	assert.Equal(t, "M0,-299A299,299,0,1,1,0,299A299,299,0,1,1,0,-299Z", single.Slices[0].Path)
	assert.Equal(t, "Go: 1,234", single.Slices[0].Title)

	ties := layout.LayoutPie([]aggregate.Slice{
		{Language: "A", Color: "#000000", Count: 1},
		{Language: "B", Color: "#000000", Count: 1},
	}, 1300)
	require.Len(t, ties.Slices, 2)
	assert.Equal(t, "A", ties.Slices[0].Language)

	assert.Empty(t, layout.LayoutPie(nil, 1300).Slices)
}

func TestLayoutLegend(t *testing.T) {
	t.Parallel()

	entries := []aggregate.LegendEntry{
		{Language: "TypeScript", Color: "#3178c6"},
		{Language: "Python", Color: "#3572A5"},
		{Language: "Go", Color: "#00ADD8"},
	}

	wide := layout.LayoutLegend(entries, 1300)
	assert.Equal(t, 6, wide.Columns)
	assert.Equal(t, 1, wide.Rows)
	assert.InDelta(t, 26.0, wide.Height, 1e-9)
	require.Len(t, wide.Swatches, 3)
	assert.InDelta(t, 0.0, wide.Swatches[0].X, 1e-9)
	assert.InDelta(t, 400.0, wide.Swatches[2].X, 1e-9)
	assert.Equal(t, layout.Point{X: 20, Y: 12}, wide.Swatches[0].Label)
	assert.InDelta(t, 15.0, wide.Swatches[0].Size, 1e-9)

	narrow := layout.LayoutLegend(entries, 250)
	assert.Equal(t, 2, narrow.Columns)
	assert.Equal(t, 2, narrow.Rows)
	assert.InDelta(t, 42.0, narrow.Height, 1e-9)
	assert.InDelta(t, 125.0, narrow.Swatches[1].X, 1e-9)
	assert.InDelta(t, 10.0, narrow.Swatches[2].X, 1e-9)
	assert.InDelta(t, 16.0, narrow.Swatches[2].Y, 1e-9)
}

func TestLayout_ViewportTransition(t *testing.T) {
	t.Parallel()

	results := sampleResults()
	stack := aggregate.StackCumulative(results)
	legend := aggregate.Legend(results)

	wideLegend := layout.LayoutLegend(legend, 1300)
	wideArea := layout.LayoutArea(stack, 1300, halfEm)

	narrowLegend := layout.LayoutLegend(legend, 350)
	narrowArea := layout.LayoutArea(stack, 350, halfEm)

	assert.Equal(t, 6, wideLegend.Columns)
	assert.Equal(t, 4, narrowLegend.Columns)
	assert.Equal(t, 2, layout.LayoutLegend(legend, 250).Columns)

	assert.Zero(t, wideArea.XAxis.Rotation)
	assert.InDelta(t, -45.0, narrowArea.XAxis.Rotation, 1e-9)
	assert.Equal(t, layout.AnchorEnd, narrowArea.XAxis.Anchor)

	// Same data on both sides of the transition.
	assert.Len(t, narrowArea.Layers, len(wideArea.Layers))
	assert.Len(t, narrowLegend.Swatches, len(wideLegend.Swatches))
}

func weekdayHistogram() stats.Histogram {
	return stats.Histogram{
		{Label: "Sunday"}, {Label: "Monday", Count: 2}, {Label: "Tuesday", Count: 1},
		{Label: "Wednesday"}, {Label: "Thursday"}, {Label: "Friday"}, {Label: "Saturday"},
	}
}

func TestLayoutWeekdays(t *testing.T) {
	t.Parallel()

	c := layout.LayoutWeekdays(weekdayHistogram(), 1300)

	assert.InDelta(t, 595.0, c.Width, 1e-9)
	assert.InDelta(t, 595.0, c.Height, 1e-9)
	assert.Equal(t, layout.Margins{Top: 20, Right: 20, Bottom: 42, Left: 20}, c.Margins)

	require.Len(t, c.Points, 7)
	assert.InDelta(t, 63.0, c.Points[0].X, 1e-9)
	assert.InDelta(t, 553.0, c.Points[0].Y, 1e-9)
	assert.InDelta(t, 141.0, c.Points[1].X, 1e-9)
	assert.InDelta(t, 20.0, c.Points[1].Y, 1e-9)
	assert.True(t, strings.HasPrefix(c.Path, "M63,553L141,20"))

	require.Len(t, c.XAxis.Ticks, 7)
	assert.Equal(t, "Sun", c.XAxis.Ticks[0].Label)
	assert.InDelta(t, 553.0, c.XAxis.Offset, 1e-9)

	require.Len(t, c.Labels, 7)
	assert.Equal(t, "2", c.Labels[1].Text)
	assert.InDelta(t, 10.0, c.Labels[1].Y, 1e-9)
	assert.Empty(t, c.Labels[0].Suffix)
	assert.Equal(t, " Commits", c.Labels[6].Suffix)
	assert.Equal(t, "#f5f5f5", c.LabelStyle.Halo)
}

func TestLayoutWeekdays_Narrow(t *testing.T) {
	t.Parallel()

	c := layout.LayoutWeekdays(weekdayHistogram(), 350)

	assert.InDelta(t, 315.0, c.Width, 1e-9)
	assert.InDelta(t, -45.0, c.XAxis.Rotation, 1e-9)
	assert.InDelta(t, 10.0, c.Font.Size, 1e-9)
}

func TestLayoutSizes(t *testing.T) {
	t.Parallel()

	h := stats.Histogram{
		{Label: "0-10", Count: 2}, {Label: "11-30", Count: 1}, {Label: "31-50"},
		{Label: "51-100"}, {Label: "101-200"}, {Label: "201-500", Count: 1}, {Label: "500+", Count: 1},
	}

	c := layout.LayoutSizes(h, 1300)
	require.Len(t, c.Bars, 7)

	assert.Equal(t, layout.Bar{Label: "0-10", Count: 2, X: 28, Y: 20, Width: 70, Height: 533}, c.Bars[0])
	assert.Equal(t, layout.Bar{Label: "11-30", Count: 1, X: 106, Y: 287, Width: 70, Height: 266}, c.Bars[1])
	assert.InDelta(t, 0.0, c.Bars[2].Height, 1e-9)
	assert.Equal(t, "#1565c0", c.Fill)
	assert.Equal(t, " Commits", c.Labels[6].Suffix)
}

func TestLayoutSizes_Empty(t *testing.T) {
	t.Parallel()

	c := layout.LayoutSizes(stats.Sizes(nil), 1300)
	require.Len(t, c.Bars, 7)

	for _, b := range c.Bars {
		assert.Zero(t, b.Height)
	}
}
