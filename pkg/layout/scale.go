package layout

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// defaultTickCount is the tick density axes ask for.
const defaultTickCount = 10

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// LinearScale maps a continuous domain onto a pixel range.
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
	Round  bool
}

// Map returns the pixel position of v. A degenerate domain maps everything to
// the middle of the range.
func (s LinearScale) Map(v float64) float64 {
	var t float64

	if s.D1 == s.D0 {
		t = 0.5
	} else {
		t = (v - s.D0) / (s.D1 - s.D0)
	}

	out := s.R0 + t*(s.R1-s.R0)
	if s.Round {
		out = math.Round(out)
	}

	return out
}

// Ticks returns round values spanning the domain, about count of them.
func (s LinearScale) Ticks(count int) []float64 {
	start, stop := s.D0, s.D1
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	inc := tickIncrement(start, stop, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}

	var ticks []float64

	if inc > 0 {
		lo, hi := math.Ceil(start/inc), math.Floor(stop/inc)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i*inc)
		}
	} else {
		inc = -inc
		lo, hi := math.Ceil(start*inc), math.Floor(stop*inc)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i/inc)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}

	return ticks
}

// TickLabels formats ticks with the precision their step needs. Integral
// steps get thousands separators.
func (s LinearScale) TickLabels(ticks []float64) []string {
	decimals := 0

	if len(ticks) > 1 {
		step := math.Abs(ticks[1] - ticks[0])
		if step < 1 {
			decimals = max(0, int(-math.Floor(math.Log10(step)+1e-9)))
		}
	}

	out := make([]string, len(ticks))

	for i, t := range ticks {
		if decimals == 0 {
			out[i] = humanize.Comma(int64(math.Round(t)))
		} else {
			out[i] = strconv.FormatFloat(t, 'f', decimals, 64)
		}
	}

	return out
}

// tickIncrement returns the tick step for a domain. Negative results are the
// inverse of a fractional step.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / float64(max(0, count))
	power := math.Floor(math.Log10(step))
	rem := step / math.Pow(10, power)

	factor := 1.0

	switch {
	case rem >= e10:
		factor = 10
	case rem >= e5:
		factor = 5
	case rem >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}

	return -math.Pow(10, -power) / factor
}

// tickStep returns the positive tick step for a domain.
func tickStep(start, stop float64, count int) float64 {
	inc := tickIncrement(math.Min(start, stop), math.Max(start, stop), count)
	if inc < 0 {
		return 1 / -inc
	}

	return inc
}

// BandScale divides a pixel range into equal bands, one per label.
type BandScale struct {
	Labels  []string
	R0, R1  float64
	Padding float64
	Round   bool

	step, bandwidth, start float64
	index              map[string]int
}

// NewBandScale computes band positions. Padding applies both between bands
// and at the outer edges, and the bands are centred in the range.
func NewBandScale(labels []string, r0, r1, padding float64, round bool) BandScale {
	s := BandScale{Labels: labels, R0: r0, R1: r1, Padding: padding, Round: round}
	s.index = make(map[string]int, len(labels))

	for i, l := range labels {
		s.index[l] = i
	}

	n := float64(len(labels))
	s.step = (r1 - r0) / math.Max(1, n-padding+padding*2)

	if round {
		s.step = math.Floor(s.step)
	}

	s.start = r0 + (r1-r0-s.step*(n-padding))*0.5
	s.bandwidth = s.step * (1 - padding)

	if round {
		s.start = math.Round(s.start)
		s.bandwidth = math.Round(s.bandwidth)
	}

	return s
}

// Pos returns the start of the band for label.
func (s BandScale) Pos(label string) (float64, bool) {
	i, ok := s.index[label]
	if !ok {
		return 0, false
	}

	return s.start + s.step*float64(i), true
}

// Center returns the middle of the band for label.
func (s BandScale) Center(label string) (float64, bool) {
	p, ok := s.Pos(label)

	return p + s.bandwidth/2, ok
}

// Bandwidth returns the width of one band.
func (s BandScale) Bandwidth() float64 { return s.bandwidth }

// Step returns the distance between band starts.
func (s BandScale) Step() float64 { return s.step }
