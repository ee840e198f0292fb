package layout

import (
	"math"

	"github.com/Sumatoshi-tech/commitlens/pkg/aggregate"
)

const (
	swatchSize    = 15.0
	rowPitch      = swatchSize + 1
	labelOffsetX  = 5.0
	labelOffsetY  = -3.0
	legendPadding = 10.0
)

// Swatch is one legend entry: a colored square and its label.
type Swatch struct {
	Language string  `json:"language" yaml:"language"`
	Color    string  `json:"color" yaml:"color"`
	Fill     string  `json:"fill" yaml:"fill"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Size     float64 `json:"size" yaml:"size"`
	Label    Point   `json:"label" yaml:"label"`
}

// Legend is the swatch grid shared by the area and pie charts.
type Legend struct {
	Width    float64  `json:"width" yaml:"width"`
	Height   float64  `json:"height" yaml:"height"`
	Columns  int      `json:"columns" yaml:"columns"`
	Rows     int      `json:"rows" yaml:"rows"`
	Font     FontSpec `json:"font" yaml:"font"`
	Swatches []Swatch `json:"swatches" yaml:"swatches"`
}

// LayoutLegend arranges entries row by row in the profile's column count.
func LayoutLegend(entries []aggregate.LegendEntry, viewport float64) Legend {
	p := ProfileFor(viewport)
	m := p.LegendMargins

	l := Legend{
		Width:   p.Width,
		Columns: p.Columns,
		Rows:    int(math.Ceil(float64(len(entries)) / float64(p.Columns))),
		Font:    FontSpec{Family: defaultFamily, Size: regularFontSize},
	}
	l.Height = float64(l.Rows)*rowPitch + legendPadding

	colWidth := (l.Width - m.Left - m.Right) / float64(p.Columns)

	for i, e := range entries {
		x := colWidth*float64(i%p.Columns) + m.Left
		y := float64(i/p.Columns)*rowPitch + m.Top

		l.Swatches = append(l.Swatches, Swatch{
			Language: e.Language,
			Color:    e.Color,
			Fill:     RGBA(e.Color),
			X:        x,
			Y:        y,
			Size:     swatchSize,
			Label:    Point{X: x + swatchSize + labelOffsetX, Y: y + swatchSize + labelOffsetY},
		})
	}

	return l
}
