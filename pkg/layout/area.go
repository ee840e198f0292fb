package layout

import (
	"strconv"

	"github.com/Sumatoshi-tech/commitlens/pkg/aggregate"
)

const (
	areaHeightRatio = 0.5
	// fallbackLabelWidth stands in for a label the measurer could not size.
	fallbackLabelWidth = 10.0
)

// AreaLayer is the band of one language in the cumulative stacked area chart.
type AreaLayer struct {
	Language string  `json:"language" yaml:"language"`
	Color    string  `json:"color" yaml:"color"`
	Fill     string  `json:"fill" yaml:"fill"`
	Title    string  `json:"title" yaml:"title"`
	Upper    []Point `json:"upper" yaml:"upper"`
	Lower    []Point `json:"lower" yaml:"lower"`
	Path     string  `json:"path" yaml:"path"`
}

// AreaChart is the geometry of the cumulative stacked area chart.
type AreaChart struct {
	Width   float64     `json:"width" yaml:"width"`
	Height  float64     `json:"height" yaml:"height"`
	Margins Margins     `json:"margins" yaml:"margins"`
	Font    FontSpec    `json:"font" yaml:"font"`
	XAxis   Axis        `json:"x_axis" yaml:"x_axis"`
	YAxis   Axis        `json:"y_axis" yaml:"y_axis"`
	Layers  []AreaLayer `json:"layers" yaml:"layers"`
}

// LayoutArea lays out the cumulative stack for a viewport width. The left
// margin is sized from the widest y tick label as reported by measurer.
func LayoutArea(stack aggregate.Stack, viewport float64, measurer TextMeasurer) AreaChart {
	p := ProfileFor(viewport)

	c := AreaChart{
		Width:   p.Width,
		Height:  min(p.Width*areaHeightRatio, maxChartHeight),
		Margins: p.AreaMargins,
		Font:    p.Font,
	}

	y := LinearScale{D0: 0, D1: float64(stack.Total)}
	yTicks := y.Ticks(defaultTickCount)
	yLabels := y.TickLabels(yTicks)

	widest := measurer.Measure(strconv.Itoa(stack.Total), p.Font)
	for _, l := range yLabels {
		widest = max(widest, measurer.Measure(l, p.Font))
	}

	if widest <= 0 {
		widest = fallbackLabelWidth
	}

	c.Margins.Left = widest + p.AreaLeftPad

	y.R0, y.R1 = c.Height-c.Margins.Bottom, c.Margins.Top

	ticks := make([]Tick, len(yTicks))
	for i, v := range yTicks {
		ticks[i] = Tick{Pos: y.Map(v), Label: yLabels[i]}
	}

	c.YAxis = leftAxis(c.Margins.Left, ticks)
	c.YAxis.GridFrom = c.Margins.Left
	c.YAxis.GridTo = c.Width - c.Margins.Right

	if stack.Empty() {
		c.XAxis = bottomAxis(c.Height-c.Margins.Bottom, nil, p)

		return c
	}

	x := TimeScale{
		D0: stack.Timestamps[0],
		D1: stack.Timestamps[len(stack.Timestamps)-1],
		R0: c.Margins.Left,
		R1: c.Width - c.Margins.Right,
	}

	xTicks := x.Ticks(defaultTickCount)
	xLabels := x.TickLabels(xTicks)
	xt := make([]Tick, len(xTicks))

	for i, t := range xTicks {
		xt[i] = Tick{Pos: x.Map(t), Label: xLabels[i]}
	}

	c.XAxis = bottomAxis(c.Height-c.Margins.Bottom, xt, p)

	for _, l := range stack.Layers {
		layer := AreaLayer{
			Language: l.Language,
			Color:    l.Color,
			Fill:     RGBA(l.Color),
			Title:    l.Language,
			Upper:    make([]Point, len(stack.Timestamps)),
			Lower:    make([]Point, len(stack.Timestamps)),
		}

		for i, ts := range stack.Timestamps {
			px := x.Map(ts)
			layer.Upper[i] = Point{X: px, Y: y.Map(float64(l.Bands[i].Y1))}
			layer.Lower[i] = Point{X: px, Y: y.Map(float64(l.Bands[i].Y0))}
		}

		layer.Path = areaPath(layer.Upper, layer.Lower)
		c.Layers = append(c.Layers, layer)
	}

	return c
}
