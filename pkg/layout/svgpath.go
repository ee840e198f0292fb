package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// fillOpacity is the alpha of every language fill.
const fillOpacity = 0.8

// Point is a position in chart pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// RGBA converts a "#rrggbb" or "#rgb" color to an rgba() string with the
// language fill opacity.
func RGBA(hex string) string {
	c := drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))

	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, num(fillOpacity))
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // drops negative zero
	}

	return strconv.FormatFloat(r, 'f', -1, 64)
}

func pt(p Point) string {
	return num(p.X) + "," + num(p.Y)
}

// polyline returns an open "M…L…" path through pts.
func polyline(pts []Point) string {
	var b strings.Builder

	for i, p := range pts {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}

		b.WriteString(pt(p))
	}

	return b.String()
}

// areaPath closes the band between upper (left to right) and lower (left to
// right) into one polygon.
func areaPath(upper, lower []Point) string {
	if len(upper) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(polyline(upper))

	for i := len(lower) - 1; i >= 0; i-- {
		b.WriteByte('L')
		b.WriteString(pt(lower[i]))
	}

	b.WriteByte('Z')

	return b.String()
}
