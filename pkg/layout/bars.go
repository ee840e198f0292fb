package layout

import (
	"strconv"

	"github.com/Sumatoshi-tech/commitlens/pkg/stats"
)

const (
	frameRatio      = 0.9
	maxFrame        = 595.0
	bandPadding     = 0.1
	valueLabelRise  = 10.0
	valueLabelSize  = 10.0
	valueLabelFont  = "sans-serif"
	seriesColor     = "#1565c0"
	haloColor       = "#f5f5f5"
	haloWidth       = 6.0
	lineStrokeWidth = 2.0
	lastLabelSuffix = " Commits"
	shortLabelRunes = 3
)

var frameMargins = Margins{Top: 20, Right: 20, Bottom: 42, Left: 20}

// ValueLabel is the inline count drawn above a datum. The last label of a
// chart carries a bold suffix.
type ValueLabel struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Text   string  `json:"text" yaml:"text"`
	Suffix string  `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// LabelStyle describes how value labels are drawn, including their halo.
type LabelStyle struct {
	Font      FontSpec `json:"font" yaml:"font"`
	Halo      string   `json:"halo" yaml:"halo"`
	HaloWidth float64  `json:"halo_width" yaml:"halo_width"`
}

// Bar is one rectangle of a bar chart.
type Bar struct {
	Label  string  `json:"label" yaml:"label"`
	Count  int     `json:"count" yaml:"count"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// LineChart is the geometry of the commits-per-weekday chart.
type LineChart struct {
	Width       float64      `json:"width" yaml:"width"`
	Height      float64      `json:"height" yaml:"height"`
	Margins     Margins      `json:"margins" yaml:"margins"`
	Font        FontSpec     `json:"font" yaml:"font"`
	XAxis       Axis         `json:"x_axis" yaml:"x_axis"`
	Points      []Point      `json:"points" yaml:"points"`
	Path        string       `json:"path" yaml:"path"`
	Stroke      string       `json:"stroke" yaml:"stroke"`
	StrokeWidth float64      `json:"stroke_width" yaml:"stroke_width"`
	Labels      []ValueLabel `json:"labels" yaml:"labels"`
	LabelStyle  LabelStyle   `json:"label_style" yaml:"label_style"`
}

// BarChart is the geometry of the commits-per-patch-size chart.
type BarChart struct {
	Width      float64      `json:"width" yaml:"width"`
	Height     float64      `json:"height" yaml:"height"`
	Margins    Margins      `json:"margins" yaml:"margins"`
	Font       FontSpec     `json:"font" yaml:"font"`
	XAxis      Axis         `json:"x_axis" yaml:"x_axis"`
	Fill       string       `json:"fill" yaml:"fill"`
	Bars       []Bar        `json:"bars" yaml:"bars"`
	Labels     []ValueLabel `json:"labels" yaml:"labels"`
	LabelStyle LabelStyle   `json:"label_style" yaml:"label_style"`
}

type frame struct {
	p      Profile
	side   float64
	band   BandScale
	labels []string
}

func newFrame(labels []string, viewport float64) frame {
	side := min(viewport*frameRatio, maxFrame)

	return frame{
		p:      ProfileFor(viewport),
		side:   side,
		band:   NewBandScale(labels, frameMargins.Left, side-frameMargins.Right, bandPadding, true),
		labels: labels,
	}
}

func (f frame) axis() Axis {
	ticks := make([]Tick, len(f.labels))

	for i, l := range f.labels {
		c, _ := f.band.Center(l)
		ticks[i] = Tick{Pos: c, Label: l}
	}

	return bottomAxis(f.side-frameMargins.Bottom, ticks, f.p)
}

func (f frame) valueLabels(h stats.Histogram, y LinearScale) []ValueLabel {
	out := make([]ValueLabel, len(h))

	for i, b := range h {
		c, _ := f.band.Center(f.labels[i])
		out[i] = ValueLabel{X: c, Y: y.Map(float64(b.Count)) - valueLabelRise, Text: strconv.Itoa(b.Count)}
	}

	if len(out) > 0 {
		out[len(out)-1].Suffix = lastLabelSuffix
	}

	return out
}

func labelStyle() LabelStyle {
	return LabelStyle{
		Font:      FontSpec{Family: valueLabelFont, Size: valueLabelSize},
		Halo:      haloColor,
		HaloWidth: haloWidth,
	}
}

// shortLabel keeps the first three runes of a label, "Monday" becoming "Mon".
func shortLabel(s string) string {
	r := []rune(s)
	if len(r) <= shortLabelRunes {
		return s
	}

	return string(r[:shortLabelRunes])
}

// LayoutWeekdays lays out the weekday histogram as a line through the band
// centers. The y domain runs from zero to the busiest day.
func LayoutWeekdays(h stats.Histogram, viewport float64) LineChart {
	labels := make([]string, len(h))
	for i, b := range h {
		labels[i] = shortLabel(b.Label)
	}

	f := newFrame(labels, viewport)
	y := LinearScale{D0: 0, D1: float64(h.Max()), R0: f.side - frameMargins.Bottom, R1: frameMargins.Top}

	c := LineChart{
		Width:       f.side,
		Height:      f.side,
		Margins:     frameMargins,
		Font:        f.p.Font,
		XAxis:       f.axis(),
		Stroke:      seriesColor,
		StrokeWidth: lineStrokeWidth,
		LabelStyle:  labelStyle(),
	}

	for i, b := range h {
		cx, _ := f.band.Center(labels[i])
		c.Points = append(c.Points, Point{X: cx, Y: y.Map(float64(b.Count))})
	}

	c.Path = polyline(c.Points)
	c.Labels = f.valueLabels(h, y)

	return c
}

// LayoutSizes lays out the patch size histogram as vertical bars.
func LayoutSizes(h stats.Histogram, viewport float64) BarChart {
	f := newFrame(h.Labels(), viewport)
	y := LinearScale{D0: 0, D1: float64(h.Max()), R0: f.side - frameMargins.Bottom, R1: frameMargins.Top, Round: true}

	c := BarChart{
		Width:      f.side,
		Height:     f.side,
		Margins:    frameMargins,
		Font:       f.p.Font,
		XAxis:      f.axis(),
		Fill:       seriesColor,
		LabelStyle: labelStyle(),
	}

	base := y.Map(0)

	for _, b := range h {
		x, _ := f.band.Pos(b.Label)
		top := y.Map(float64(b.Count))
		c.Bars = append(c.Bars, Bar{
			Label:  b.Label,
			Count:  b.Count,
			X:      x,
			Y:      top,
			Width:  f.band.Bandwidth(),
			Height: base - top,
		})
	}

	c.Labels = f.valueLabels(h, y)

	return c
}
