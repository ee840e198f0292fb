package layout

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/Sumatoshi-tech/commitlens/pkg/lru"
)

// TextMeasurer returns the rendered width of text in pixels.
type TextMeasurer interface {
	Measure(text string, font FontSpec) float64
}

// MeasureFunc adapts a function to TextMeasurer.
type MeasureFunc func(text string, font FontSpec) float64

// Measure implements TextMeasurer.
func (f MeasureFunc) Measure(text string, font FontSpec) float64 {
	return f(text, font)
}

const (
	// pointsPerInch makes one font point equal one pixel.
	pointsPerInch = 72
	// widthCacheSize bounds the memoized label widths.
	widthCacheSize = 1024
)

type widthKey struct {
	text string
	size float64
}

// FontMeasurer measures text with a TrueType font through the go-chart vector
// renderer. No output is drawn. Widths are memoized, so relayouts of the same
// data do not measure tick labels again. It is safe for concurrent use.
type FontMeasurer struct {
	mu     sync.Mutex
	font   *truetype.Font
	widths *lru.Cache[widthKey, float64]
}

// NewFontMeasurer returns a measurer backed by the go-chart default font. The
// font family of a FontSpec is ignored; only its size is honoured.
func NewFontMeasurer() (*FontMeasurer, error) {
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load default font: %w", err)
	}

	return NewFontMeasurerWith(f), nil
}

// NewFontMeasurerWith returns a measurer backed by f.
func NewFontMeasurerWith(f *truetype.Font) *FontMeasurer {
	return &FontMeasurer{font: f, widths: lru.New[widthKey, float64](widthCacheSize)}
}

// Measure implements TextMeasurer. It returns 0 when the text cannot be
// measured.
func (m *FontMeasurer) Measure(text string, font FontSpec) float64 {
	if text == "" || font.Size <= 0 {
		return 0
	}

	return m.widths.GetOrCompute(widthKey{text: text, size: font.Size}, func() float64 {
		return m.measure(text, font.Size)
	})
}

// Cached returns the number of memoized widths.
func (m *FontMeasurer) Cached() int {
	return m.widths.Len()
}

func (m *FontMeasurer) measure(text string, size float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := chart.SVG(1, 1)
	if err != nil {
		return 0
	}

	r.SetDPI(pointsPerInch)
	r.SetFont(m.font)
	r.SetFontSize(size)

	return float64(r.MeasureText(text).Width())
}

// FixedMeasurer gives every rune the same advance, Ratio times the font size.
type FixedMeasurer struct {
	Ratio float64
}

// Measure implements TextMeasurer.
func (m FixedMeasurer) Measure(text string, font FontSpec) float64 {
	return float64(utf8.RuneCountInString(text)) * font.Size * m.Ratio
}
