package stats

// Bucket is one labelled count.
type Bucket struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Histogram is an ordered list of buckets. The order is the declared order of
// its labels and is also the tie-break order.
type Histogram []Bucket

func newHistogram(labels []string) Histogram {
	h := make(Histogram, len(labels))
	for i, l := range labels {
		h[i].Label = l
	}

	return h
}

// Total returns the sum of all bucket counts.
func (h Histogram) Total() int {
	n := 0
	for _, b := range h {
		n += b.Count
	}

	return n
}

// Dominant returns the label with the highest count. Ties go to the earliest
// bucket, so an all-zero histogram yields its first label.
func (h Histogram) Dominant() string {
	if len(h) == 0 {
		return ""
	}

	best := 0

	for i := 1; i < len(h); i++ {
		if h[i].Count > h[best].Count {
			best = i
		}
	}

	return h[best].Label
}

// Labels returns the bucket labels in order.
func (h Histogram) Labels() []string {
	out := make([]string, len(h))
	for i, b := range h {
		out[i] = b.Label
	}

	return out
}

// Counts returns the bucket counts in order.
func (h Histogram) Counts() []int {
	out := make([]int, len(h))
	for i, b := range h {
		out[i] = b.Count
	}

	return out
}

// Max returns the largest bucket count.
func (h Histogram) Max() int {
	m := 0
	for _, b := range h {
		m = max(m, b.Count)
	}

	return m
}

// Count returns the count of a label.
func (h Histogram) Count(label string) int {
	for _, b := range h {
		if b.Label == label {
			return b.Count
		}
	}

	return 0
}
