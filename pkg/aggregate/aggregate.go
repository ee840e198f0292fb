// Package aggregate derives time series and categorical totals from classified
// commits. Every function recomputes from scratch and never mutates its input.
package aggregate

import (
	"slices"
	"time"

	"github.com/Sumatoshi-tech/commitlens/pkg/commit"
)

// minSuccesses is the number of classified commits a chart needs.
const minSuccesses = 2

// HasData reports whether results are complete and hold enough successes to
// chart: the collection must align with the input and contain at least two
// classified commits.
func HasData(results []*commit.Classified, inputLen int) bool {
	return len(results) == inputLen && commit.CountSuccesses(results) >= minSuccesses
}

// Successes returns the classified commits ordered by timestamp. Commits with
// equal timestamps keep their input order.
func Successes(results []*commit.Classified) []commit.Classified {
	out := make([]commit.Classified, 0, len(results))

	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}

	slices.SortStableFunc(out, func(a, b commit.Classified) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return out
}

// Band is the stacked extent of one layer at one timestamp.
type Band struct {
	Y0 int `json:"y0" yaml:"y0"`
	Y1 int `json:"y1" yaml:"y1"`
}

// Layer is the cumulative series of one language.
type Layer struct {
	Language string `json:"language" yaml:"language"`
	Color    string `json:"color" yaml:"color"`

	// Values[i] is the number of commits in Language at or before Timestamps[i].
	Values []int  `json:"values" yaml:"values"`
	Bands  []Band `json:"bands" yaml:"bands"`
}

// Stack is the cumulative per-language series over the distinct timestamps of
// the classified commits.
type Stack struct {
	Timestamps []time.Time `json:"timestamps" yaml:"timestamps"`
	Layers     []Layer     `json:"layers" yaml:"layers"`
	Total      int         `json:"total" yaml:"total"`
}

// Point is one cumulative count.
type Point struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Language  string    `json:"language" yaml:"language"`
	Count     int       `json:"count" yaml:"count"`
}

// Empty reports whether the stack has no data.
func (s Stack) Empty() bool {
	return len(s.Timestamps) == 0
}

// Points flattens the stack into per (timestamp, language) points, timestamps
// first, layers in stack order.
func (s Stack) Points() []Point {
	out := make([]Point, 0, len(s.Timestamps)*len(s.Layers))

	for i, ts := range s.Timestamps {
		for _, l := range s.Layers {
			out = append(out, Point{Timestamp: ts, Language: l.Language, Count: l.Values[i]})
		}
	}

	return out
}

// Final returns the last cumulative value of each layer by language.
func (s Stack) Final() map[string]int {
	out := make(map[string]int, len(s.Layers))

	for _, l := range s.Layers {
		if n := len(l.Values); n > 0 {
			out[l.Language] = l.Values[n-1]
		}
	}

	return out
}

// StackCumulative builds the cumulative stack in one pass over the sorted
// successes. Layers are ordered by first appearance.
func StackCumulative(results []*commit.Classified) Stack {
	sorted := Successes(results)
	if len(sorted) == 0 {
		return Stack{}
	}

	layerIdx := map[string]int{}

	var (
		layers     []Layer
		counts     []int
		timestamps []time.Time
	)

	for i := 0; i < len(sorted); {
		ts := sorted[i].Timestamp

		// Fold every commit sharing this timestamp before recording it.
		for ; i < len(sorted) && sorted[i].Timestamp.Equal(ts); i++ {
			c := sorted[i]

			idx, ok := layerIdx[c.Language]
			if !ok {
				idx = len(layers)
				layerIdx[c.Language] = idx
				layers = append(layers, Layer{Language: c.Language, Color: c.Color})
				counts = append(counts, 0)

				// Back-fill earlier timestamps with zero.
				layers[idx].Values = make([]int, len(timestamps))
			}

			counts[idx]++
		}

		timestamps = append(timestamps, ts)
		for idx := range layers {
			layers[idx].Values = append(layers[idx].Values, counts[idx])
		}
	}

	for t := range timestamps {
		base := 0

		for idx := range layers {
			v := layers[idx].Values[t]
			layers[idx].Bands = append(layers[idx].Bands, Band{Y0: base, Y1: base + v})
			base += v
		}
	}

	return Stack{Timestamps: timestamps, Layers: layers, Total: len(sorted)}
}

// Slice is the categorical total of one language.
type Slice struct {
	Language string `json:"language" yaml:"language"`
	Color    string `json:"color" yaml:"color"`
	Count    int    `json:"count" yaml:"count"`
}

// Totals counts classified commits per language, largest first. Ties keep
// first-appearance order.
func Totals(results []*commit.Classified) []Slice {
	sorted := Successes(results)
	idx := map[string]int{}

	var out []Slice

	for _, c := range sorted {
		i, ok := idx[c.Language]
		if !ok {
			i = len(out)
			idx[c.Language] = i
			out = append(out, Slice{Language: c.Language, Color: c.Color})
		}

		out[i].Count++
	}

	slices.SortStableFunc(out, func(a, b Slice) int {
		return b.Count - a.Count
	})

	return out
}

// LegendEntry is one distinct language and its color.
type LegendEntry struct {
	Language string `json:"language" yaml:"language"`
	Color    string `json:"color" yaml:"color"`
}

// Legend lists distinct (language, color) pairs by first appearance in time.
func Legend(results []*commit.Classified) []LegendEntry {
	seen := map[LegendEntry]bool{}

	var out []LegendEntry

	for _, c := range Successes(results) {
		e := LegendEntry{Language: c.Language, Color: c.Color}
		if seen[e] {
			continue
		}

		seen[e] = true
		out = append(out, e)
	}

	return out
}
