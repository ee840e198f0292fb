// Package render turns dashboard geometry into SVG files, an interactive HTML
// page, a terminal summary or a machine-readable geometry dump.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Sumatoshi-tech/commitlens/pkg/layout"
)

// Sentinel errors for SVG rendering.
var (
	ErrNoChart          = errors.New("no chart to render")
	ErrUnsupportedChart = errors.New("unsupported chart type")
)

const (
	svgDPI      = 72
	fillAlpha   = 204
	arcStep     = math.Pi / 90
	axisWidth   = 1.0
	belowEm     = 0.71
	centerEm    = 0.32
	degToRadian = math.Pi / 180
)

var (
	textColor = drawing.ColorFromHex("333333")
	axisColor = drawing.ColorFromHex("000000")
	gridColor = drawing.ColorFromHex("000000").WithAlpha(25)
)

// canvas wraps a go-chart vector renderer with the few primitives the charts
// need. Coordinates are chart pixels, rounded when handed to the renderer.
type canvas struct {
	r    chart.Renderer
	font *truetype.Font
}

func newCanvas(width, height float64) (*canvas, error) {
	r, err := chart.SVG(int(math.Ceil(width)), int(math.Ceil(height)))
	if err != nil {
		return nil, fmt.Errorf("create svg renderer: %w", err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load default font: %w", err)
	}

	r.SetDPI(svgDPI)
	r.SetFont(font)

	return &canvas{r: r, font: font}, nil
}

func px(v float64) int {
	return int(math.Round(v))
}

func fillColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#")).WithAlpha(fillAlpha)
}

func solidColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func (c *canvas) polygon(pts []layout.Point, fill drawing.Color) {
	if len(pts) < 2 {
		return
	}

	c.r.ResetStyle()
	c.r.SetFillColor(fill)
	c.r.MoveTo(px(pts[0].X), px(pts[0].Y))

	for _, p := range pts[1:] {
		c.r.LineTo(px(p.X), px(p.Y))
	}

	c.r.Close()
	c.r.Fill()
}

func (c *canvas) polyline(pts []layout.Point, stroke drawing.Color, width float64) {
	if len(pts) < 2 {
		return
	}

	c.r.ResetStyle()
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(px(pts[0].X), px(pts[0].Y))

	for _, p := range pts[1:] {
		c.r.LineTo(px(p.X), px(p.Y))
	}

	c.r.Stroke()
}

func (c *canvas) line(x0, y0, x1, y1 float64, stroke drawing.Color) {
	c.polyline([]layout.Point{{X: x0, Y: y0}, {X: x1, Y: y1}}, stroke, axisWidth)
}

func (c *canvas) rect(x, y, w, h float64, fill drawing.Color) {
	c.polygon([]layout.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, fill)
}

// text draws body anchored at (x, y). Rotation is in degrees; the anchor stays
// fixed while the text turns around it.
func (c *canvas) text(body string, x, y float64, font layout.FontSpec, anchor string, rotation float64, color drawing.Color) {
	if body == "" {
		return
	}

	c.r.ResetStyle()
	c.r.SetFont(c.font)
	c.r.SetFontSize(font.Size)
	c.r.SetFontColor(color)

	width := float64(c.r.MeasureText(body).Width())

	shift := 0.0

	switch anchor {
	case layout.AnchorMiddle:
		shift = width / 2
	case layout.AnchorEnd:
		shift = width
	}

	theta := rotation * degToRadian
	x -= shift * math.Cos(theta)
	y -= shift * math.Sin(theta)

	if rotation != 0 {
		c.r.SetTextRotation(theta)
	}

	c.r.Text(html.EscapeString(body), px(x), px(y))
	c.r.ClearTextRotation()
}

func (c *canvas) bottomAxis(a layout.Axis, x0, x1 float64, font layout.FontSpec) {
	c.line(x0, a.Offset, x1, a.Offset, axisColor)

	for i, t := range a.Ticks {
		c.line(t.Pos, a.Offset, t.Pos, a.Offset+a.TickSize, axisColor)

		p := a.LabelPoint(i, true)
		if a.Rotation == 0 {
			p.Y += font.Size * belowEm
		}

		c.text(t.Label, p.X, p.Y, font, a.Anchor, a.Rotation, textColor)
	}
}

func (c *canvas) leftAxis(a layout.Axis, font layout.FontSpec) {
	for i, t := range a.Ticks {
		if a.GridTo > a.GridFrom {
			c.line(a.GridFrom, t.Pos, a.GridTo, t.Pos, gridColor)
		}

		p := a.LabelPoint(i, false)
		c.text(t.Label, p.X, p.Y+font.Size*centerEm, font, a.Anchor, 0, textColor)
	}
}

func (c *canvas) save(w io.Writer) error {
	if err := c.r.Save(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}

	return nil
}

func drawArea(w io.Writer, a *layout.AreaChart) error {
	c, err := newCanvas(a.Width, a.Height)
	if err != nil {
		return err
	}

	c.leftAxis(a.YAxis, a.Font)

	for _, l := range a.Layers {
		pts := make([]layout.Point, 0, len(l.Upper)+len(l.Lower))
		pts = append(pts, l.Upper...)

		for i := len(l.Lower) - 1; i >= 0; i-- {
			pts = append(pts, l.Lower[i])
		}

		c.polygon(pts, fillColor(l.Color))
	}

	c.bottomAxis(a.XAxis, a.Margins.Left, a.Width-a.Margins.Right, a.Font)

	return c.save(w)
}

func drawPie(w io.Writer, p *layout.PieChart) error {
	c, err := newCanvas(p.Width, p.Height)
	if err != nil {
		return err
	}

	at := func(a float64) layout.Point {
		return layout.Point{X: p.Center.X + p.Radius*math.Sin(a), Y: p.Center.Y - p.Radius*math.Cos(a)}
	}

	for _, s := range p.Slices {
		pts := []layout.Point{p.Center}

		for a := s.StartAngle; a < s.EndAngle; a += arcStep {
			pts = append(pts, at(a))
		}

		pts = append(pts, at(s.EndAngle))
		c.polygon(pts, fillColor(s.Color))
	}

	return c.save(w)
}

func drawLegend(w io.Writer, l *layout.Legend) error {
	c, err := newCanvas(l.Width, l.Height)
	if err != nil {
		return err
	}

	for _, s := range l.Swatches {
		c.rect(s.X, s.Y, s.Size, s.Size, fillColor(s.Color))
		c.text(s.Language, s.Label.X, s.Label.Y, l.Font, layout.AnchorStart, 0, textColor)
	}

	return c.save(w)
}

func (c *canvas) valueLabels(labels []layout.ValueLabel, style layout.LabelStyle) {
	halo := solidColor(style.Halo)

	for _, l := range labels {
		body := l.Text + l.Suffix

		c.r.ResetStyle()
		c.r.SetFont(c.font)
		c.r.SetFontSize(style.Font.Size)

		width := float64(c.r.MeasureText(body).Width())
		c.rect(l.X-width/2-style.HaloWidth/2, l.Y-style.Font.Size, width+style.HaloWidth, style.Font.Size+style.HaloWidth/2, halo)
		c.text(body, l.X, l.Y, style.Font, layout.AnchorMiddle, 0, textColor)
	}
}

func drawLine(w io.Writer, l *layout.LineChart) error {
	c, err := newCanvas(l.Width, l.Height)
	if err != nil {
		return err
	}

	c.bottomAxis(l.XAxis, l.Margins.Left, l.Width-l.Margins.Right, l.Font)
	c.polyline(l.Points, solidColor(l.Stroke), l.StrokeWidth)
	c.valueLabels(l.Labels, l.LabelStyle)

	return c.save(w)
}

func drawBars(w io.Writer, b *layout.BarChart) error {
	c, err := newCanvas(b.Width, b.Height)
	if err != nil {
		return err
	}

	fill := solidColor(b.Fill)

	for _, bar := range b.Bars {
		c.rect(bar.X, bar.Y, bar.Width, bar.Height, fill)
	}

	c.bottomAxis(b.XAxis, b.Margins.Left, b.Width-b.Margins.Right, b.Font)
	c.valueLabels(b.Labels, b.LabelStyle)

	return c.save(w)
}

// SVG writes one chart as a standalone SVG document. The chart must be a
// non-nil *layout.AreaChart, *layout.PieChart, *layout.Legend,
// *layout.LineChart or *layout.BarChart.
func SVG(w io.Writer, c any) error {
	switch v := c.(type) {
	case *layout.AreaChart:
		if v == nil {
			return ErrNoChart
		}

		return drawArea(w, v)
	case *layout.PieChart:
		if v == nil {
			return ErrNoChart
		}

		return drawPie(w, v)
	case *layout.Legend:
		if v == nil {
			return ErrNoChart
		}

		return drawLegend(w, v)
	case *layout.LineChart:
		if v == nil {
			return ErrNoChart
		}

		return drawLine(w, v)
	case *layout.BarChart:
		if v == nil {
			return ErrNoChart
		}

		return drawBars(w, v)
	case nil:
		return ErrNoChart
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedChart, c)
	}
}

func chartSize(c any) (float64, float64) {
	switch v := c.(type) {
	case *layout.AreaChart:
		return v.Width, v.Height
	case *layout.PieChart:
		return v.Width, v.Height
	case *layout.Legend:
		return v.Width, v.Height
	case *layout.LineChart:
		return v.Width, v.Height
	case *layout.BarChart:
		return v.Width, v.Height
	}

	return 0, 0
}

// CombinedSVG writes the legend stacked above chart in one SVG document.
func CombinedSVG(w io.Writer, legend *layout.Legend, c any) error {
	if legend == nil {
		return ErrNoChart
	}

	var top, bottom bytes.Buffer

	if err := SVG(&top, legend); err != nil {
		return err
	}

	if err := SVG(&bottom, c); err != nil {
		return err
	}

	width, height := chartSize(c)
	width = max(width, legend.Width)

	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">%s<g transform="translate(0,%d)">%s</g></svg>`,
		px(math.Ceil(width)), px(math.Ceil(legend.Height+height)),
		top.String(), px(math.Ceil(legend.Height)), bottom.String())
	if err != nil {
		return fmt.Errorf("write svg: %w", err)
	}

	return nil
}
