package layout

// Text anchors of axis labels.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

const (
	tickSize    = 6.0
	tickPadding = 3.0
)

// Tick is one labelled axis tick. Pos is along the axis; the other coordinate
// comes from the axis itself.
type Tick struct {
	Pos   float64 `json:"pos" yaml:"pos"`
	Label string  `json:"label" yaml:"label"`
}

// Axis is a horizontal or vertical chart axis.
type Axis struct {
	// Offset is the y of a bottom axis or the x of a left axis.
	Offset float64 `json:"offset" yaml:"offset"`
	Ticks  []Tick  `json:"ticks" yaml:"ticks"`

	// Rotation of the tick labels in degrees, 0 for horizontal labels.
	Rotation float64 `json:"rotation" yaml:"rotation"`
	Anchor   string  `json:"anchor" yaml:"anchor"`
	TickSize float64 `json:"tick_size" yaml:"tick_size"`

	// Grid spans the plot area for every tick when GridTo > GridFrom.
	GridFrom float64 `json:"grid_from,omitempty" yaml:"grid_from,omitempty"`
	GridTo   float64 `json:"grid_to,omitempty" yaml:"grid_to,omitempty"`
}

// LabelPoint returns where the label of tick i is anchored.
func (a Axis) LabelPoint(i int, bottom bool) Point {
	gap := a.TickSize + tickPadding

	if bottom {
		return Point{X: a.Ticks[i].Pos, Y: a.Offset + gap}
	}

	return Point{X: a.Offset - gap, Y: a.Ticks[i].Pos}
}

func bottomAxis(offset float64, ticks []Tick, p Profile) Axis {
	a := Axis{Offset: offset, Ticks: ticks, Anchor: AnchorMiddle, TickSize: tickSize}
	if p.RotateLabels {
		a.Rotation = p.LabelRotation
		a.Anchor = AnchorEnd
	}

	return a
}

func leftAxis(offset float64, ticks []Tick) Axis {
	return Axis{Offset: offset, Ticks: ticks, Anchor: AnchorEnd, TickSize: tickSize}
}
