package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/commitlens/pkg/layout"
)

func TestProfileFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		viewport float64
		width    float64
		columns  int
		rotate   bool
		font     float64
		compact  bool
	}{
		{viewport: 250, width: 250, columns: 2, rotate: true, font: 10, compact: true},
		{viewport: 299, width: 299, columns: 2, rotate: true, font: 10, compact: true},
		{viewport: 300, width: 300, columns: 4, rotate: true, font: 10, compact: true},
		{viewport: 350, width: 350, columns: 4, rotate: true, font: 10, compact: true},
		{viewport: 400, width: 400, columns: 4, rotate: true, font: 12, compact: true},
		{viewport: 799, width: 799, columns: 4, rotate: true, font: 12, compact: true},
		{viewport: 800, width: 800, columns: 4, rotate: false, font: 12, compact: true},
		{viewport: 900, width: 900, columns: 6, rotate: false, font: 12, compact: true},
		{viewport: 1200, width: 1200, columns: 6, rotate: false, font: 12, compact: false},
		{viewport: 1300, width: 1200, columns: 6, rotate: false, font: 12, compact: false},
	}

	for _, tt := range tests {
		p := layout.ProfileFor(tt.viewport)

		assert.InDelta(t, tt.width, p.Width, 1e-9, "viewport %v", tt.viewport)
		assert.Equal(t, tt.columns, p.Columns, "viewport %v", tt.viewport)
		assert.Equal(t, tt.rotate, p.RotateLabels, "viewport %v", tt.viewport)
		assert.InDelta(t, tt.font, p.Font.Size, 1e-9, "viewport %v", tt.viewport)
		assert.InDelta(t, tt.font/16, p.FontScale, 1e-9, "viewport %v", tt.viewport)
		assert.Equal(t, tt.compact, p.Compact, "viewport %v", tt.viewport)

		if tt.rotate {
			assert.InDelta(t, -45.0, p.LabelRotation, 1e-9)
		} else {
			assert.Zero(t, p.LabelRotation)
		}
	}
}

func TestProfileFor_Margins(t *testing.T) {
	t.Parallel()

	compact := layout.ProfileFor(1000)
	assert.Equal(t, layout.Margins{Top: 6, Right: 10, Bottom: 36}, compact.AreaMargins)
	assert.InDelta(t, 19.0, compact.AreaLeftPad, 1e-9)
	assert.Equal(t, layout.Margins{Right: 10, Bottom: 10, Left: 10}, compact.LegendMargins)

	wide := layout.ProfileFor(1200)
	assert.Equal(t, layout.Margins{Top: 6, Bottom: 21}, wide.AreaMargins)
	assert.InDelta(t, 9.0, wide.AreaLeftPad, 1e-9)
	assert.Equal(t, layout.Margins{Bottom: 10}, wide.LegendMargins)
}

func TestRGBA(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rgba(49, 120, 198, 0.8)", layout.RGBA("#3178c6"))
	assert.Equal(t, "rgba(0, 173, 216, 0.8)", layout.RGBA("#00ADD8"))
	assert.Equal(t, "rgba(255, 255, 255, 0.8)", layout.RGBA("#fff"))
}
