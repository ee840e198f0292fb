// Package layout turns aggregated commit data into declarative chart geometry.
// Every function here is pure: the same data, viewport width and text measurer
// always produce the same geometry, and nothing touches a drawing surface.
package layout

// Breakpoints of the responsive ladder, in CSS pixels.
const (
	maxChartWidth   = 1200.0
	maxChartHeight  = 600.0
	narrowLegend    = 300.0
	mediumLegend    = 900.0
	rotateBelow     = 800.0
	smallFontBelow  = 400.0
	compactBelow    = 1200.0
	baseFontSize    = 16.0
	smallFontSize   = 10.0
	regularFontSize = 12.0
	labelRotation   = -45.0
	defaultFamily   = "Arial"
)

// Margins are the insets of a chart frame.
type Margins struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// FontSpec identifies the font used to draw and measure a label.
type FontSpec struct {
	Family string  `json:"family" yaml:"family"`
	Size   float64 `json:"size" yaml:"size"`
}

// Profile is the responsive configuration shared by every chart for one
// viewport width.
type Profile struct {
	Viewport float64 `json:"viewport" yaml:"viewport"`
	Width    float64 `json:"width" yaml:"width"`

	// Columns is the number of swatches per legend row.
	Columns int `json:"columns" yaml:"columns"`

	RotateLabels  bool    `json:"rotate_labels" yaml:"rotate_labels"`
	LabelRotation float64 `json:"label_rotation" yaml:"label_rotation"`

	Font      FontSpec `json:"font" yaml:"font"`
	FontScale float64  `json:"font_scale" yaml:"font_scale"`

	Compact bool `json:"compact" yaml:"compact"`

	// AreaMargins has no left inset; the area chart adds the measured width
	// of its widest y label plus AreaLeftPad.
	AreaMargins   Margins `json:"area_margins" yaml:"area_margins"`
	AreaLeftPad   float64 `json:"area_left_pad" yaml:"area_left_pad"`
	LegendMargins Margins `json:"legend_margins" yaml:"legend_margins"`
}

// ProfileFor returns the profile for a viewport width.
func ProfileFor(viewport float64) Profile {
	p := Profile{
		Viewport: viewport,
		Width:    min(viewport, maxChartWidth),
		Font:     FontSpec{Family: defaultFamily, Size: regularFontSize},
	}

	switch {
	case viewport < narrowLegend:
		p.Columns = 2
	case viewport < mediumLegend:
		p.Columns = 4
	default:
		p.Columns = 6
	}

	if viewport < rotateBelow {
		p.RotateLabels = true
		p.LabelRotation = labelRotation
	}

	if viewport < smallFontBelow {
		p.Font.Size = smallFontSize
	}

	p.FontScale = p.Font.Size / baseFontSize

	p.Compact = viewport < compactBelow
	if p.Compact {
		p.AreaMargins = Margins{Top: 6, Right: 10, Bottom: 36}
		p.AreaLeftPad = 19
		p.LegendMargins = Margins{Right: 10, Bottom: 10, Left: 10}
	} else {
		p.AreaMargins = Margins{Top: 6, Bottom: 21}
		p.AreaLeftPad = 9
		p.LegendMargins = Margins{Bottom: 10}
	}

	return p
}
