package layout

import (
	"math"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/commitlens/pkg/aggregate"
)

// PieSlice is one language wedge. Angles are radians clockwise from 12
// o'clock; points are relative to the pie center.
type PieSlice struct {
	Language   string  `json:"language" yaml:"language"`
	Count      int     `json:"count" yaml:"count"`
	Color      string  `json:"color" yaml:"color"`
	Fill       string  `json:"fill" yaml:"fill"`
	StartAngle float64 `json:"start_angle" yaml:"start_angle"`
	EndAngle   float64 `json:"end_angle" yaml:"end_angle"`
	Centroid   Point   `json:"centroid" yaml:"centroid"`
	Path       string  `json:"path" yaml:"path"`
	Title      string  `json:"title" yaml:"title"`
}

// PieChart is the geometry of the language pie chart.
type PieChart struct {
	Width  float64    `json:"width" yaml:"width"`
	Height float64    `json:"height" yaml:"height"`
	Center Point      `json:"center" yaml:"center"`
	Radius float64    `json:"radius" yaml:"radius"`
	Slices []PieSlice `json:"slices" yaml:"slices"`
}

// LayoutPie lays out per-language totals as a pie, largest slice first.
// Equal counts keep their input order.
func LayoutPie(totals []aggregate.Slice, viewport float64) PieChart {
	p := ProfileFor(viewport)

	c := PieChart{
		Width:  p.Width,
		Height: min(p.Width*areaHeightRatio, maxChartHeight),
	}
	c.Center = Point{X: c.Width / 2, Y: c.Height / 2}
	c.Radius = math.Max(0, min(c.Width, c.Height)/2-1)

	sum := 0
	for _, s := range totals {
		sum += s.Count
	}

	if sum == 0 {
		return c
	}

	order := slices.Clone(totals)
	slices.SortStableFunc(order, func(a, b aggregate.Slice) int {
		return b.Count - a.Count
	})

	angle := 0.0

	for _, s := range order {
		span := 2 * math.Pi * float64(s.Count) / float64(sum)
		slice := PieSlice{
			Language:   s.Language,
			Count:      s.Count,
			Color:      s.Color,
			Fill:       RGBA(s.Color),
			StartAngle: angle,
			EndAngle:   angle + span,
			Title:      s.Language + ": " + humanize.Comma(int64(s.Count)),
		}

		mid := angle + span/2
		slice.Centroid = polar(c.Radius/2, mid)
		slice.Path = wedgePath(c.Radius, slice.StartAngle, slice.EndAngle)

		c.Slices = append(c.Slices, slice)
		angle += span
	}

	return c
}

// polar converts an angle clockwise from 12 o'clock to a point.
func polar(r, a float64) Point {
	return Point{X: r * math.Sin(a), Y: -r * math.Cos(a)}
}

// wedgePath draws a slice from the center. A full turn becomes two half arcs
// so the path stays well formed.
func wedgePath(r, a0, a1 float64) string {
	if r <= 0 || a1 <= a0 {
		return ""
	}

	var b strings.Builder

	if a1-a0 >= 2*math.Pi-1e-9 {
		top, bottom := polar(r, 0), polar(r, math.Pi)
		b.WriteString("M" + pt(top))
		b.WriteString("A" + num(r) + "," + num(r) + ",0,1,1," + pt(bottom))
		b.WriteString("A" + num(r) + "," + num(r) + ",0,1,1," + pt(top))
		b.WriteString("Z")

		return b.String()
	}

	large := "0"
	if a1-a0 > math.Pi {
		large = "1"
	}

	b.WriteString("M" + pt(polar(r, a0)))
	b.WriteString("A" + num(r) + "," + num(r) + ",0," + large + ",1," + pt(polar(r, a1)))
	b.WriteString("L0,0Z")

	return b.String()
}
