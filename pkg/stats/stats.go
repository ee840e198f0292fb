// Package stats computes descriptive statistics over a raw commit set: naming
// convention bias, average patch size, and commit histograms by weekday, time
// of day and patch size. Only the first changed file of each commit is used and
// nil records are skipped.
package stats

import (
	"fmt"
	"regexp"
	"time"

	"github.com/Sumatoshi-tech/commitlens/pkg/commit"
	"github.com/Sumatoshi-tech/commitlens/pkg/diffclean"
)

// Convention is a naming convention.
type Convention string

// Naming conventions in tie-break order.
const (
	CamelCase  Convention = "camelCase"
	SnakeCase  Convention = "snake_case"
	PascalCase Convention = "PascalCase"
	KebabCase  Convention = "kebab-case"
)

var conventionOrder = []Convention{CamelCase, SnakeCase, PascalCase, KebabCase}

var conventionPatterns = map[Convention]*regexp.Regexp{
	CamelCase:  regexp.MustCompile(`[a-z][a-zA-Z0-9]*[A-Z][a-zA-Z0-9]*`),
	SnakeCase:  regexp.MustCompile(`\b[a-z][a-zA-Z0-9]*_[a-z][a-zA-Z0-9]*\b`),
	PascalCase: regexp.MustCompile(`[A-Z]([A-Z0-9]*[a-z][a-z0-9]*[A-Z]|[a-z0-9]*[A-Z][A-Z0-9]*[a-z])[A-Za-z0-9]*`),
	KebabCase:  regexp.MustCompile(`\b[a-z][a-zA-Z0-9]*-[a-z][a-zA-Z0-9]*\b`),
}

// Time-of-day buckets.
const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
	Night     = "night"
)

const (
	afternoonStartHour = 12
	eveningStartHour   = 17
	nightStartHour     = 20
)

// WeekdayLabels lists the weekday labels, Sunday first.
var WeekdayLabels = []string{
	time.Sunday.String(), time.Monday.String(), time.Tuesday.String(), time.Wednesday.String(),
	time.Thursday.String(), time.Friday.String(), time.Saturday.String(),
}

// TimeOfDayLabels lists the time-of-day labels.
var TimeOfDayLabels = []string{Morning, Afternoon, Evening, Night}

type sizeRange struct {
	label    string
	min, max int
}

// The last range is open-ended.
var sizeRanges = []sizeRange{
	{"0-10", 0, 10},
	{"11-30", 11, 30},
	{"31-50", 31, 50},
	{"51-100", 51, 100},
	{"101-200", 101, 200},
	{"201-500", 201, 500},
	{"500+", 501, -1},
}

// SizeLabels lists the patch size bucket labels.
func SizeLabels() []string {
	out := make([]string, len(sizeRanges))
	for i, r := range sizeRanges {
		out[i] = r.label
	}

	return out
}

// ConventionCounts holds regex match totals per convention.
type ConventionCounts map[Convention]int

// Dominant returns the convention with most matches; declared order breaks ties
// and no matches at all yields camelCase.
func (c ConventionCounts) Dominant() Convention {
	best := conventionOrder[0]

	for _, conv := range conventionOrder[1:] {
		if c[conv] > c[best] {
			best = conv
		}
	}

	return best
}

// Conventions counts naming convention matches over the sanitized first-file
// patches.
func Conventions(records []*commit.Record) ConventionCounts {
	counts := ConventionCounts{}
	for _, conv := range conventionOrder {
		counts[conv] = 0
	}

	for _, rec := range records {
		patch, ok := rec.FirstPatch()
		if !ok {
			continue
		}

		code := diffclean.Sanitize(patch)
		for _, conv := range conventionOrder {
			counts[conv] += len(conventionPatterns[conv].FindAllStringIndex(code, -1))
		}
	}

	return counts
}

// DominantConvention returns the most used naming convention in records.
func DominantConvention(records []*commit.Record) Convention {
	return Conventions(records).Dominant()
}

// AverageLOC returns the mean line count of the first-file patches. Commits
// without a patch are excluded from numerator and denominator. The second
// result is false, and the mean 0, when no commit has a patch.
func AverageLOC(records []*commit.Record) (float64, bool) {
	total, n := 0, 0

	for _, rec := range records {
		patch, ok := rec.FirstPatch()
		if !ok {
			continue
		}

		total += diffclean.LineCount(patch)
		n++
	}

	if n == 0 {
		return 0, false
	}

	return float64(total) / float64(n), true
}

// Weekdays counts commits by author weekday in loc.
func Weekdays(records []*commit.Record, loc *time.Location) Histogram {
	h := newHistogram(WeekdayLabels)

	for _, rec := range records {
		ts, ok := rec.AuthorTime()
		if !ok {
			continue
		}

		h[int(ts.In(loc).Weekday())].Count++
	}

	return h
}

// TimesOfDay counts commits by author hour in loc.
func TimesOfDay(records []*commit.Record, loc *time.Location) Histogram {
	h := newHistogram(TimeOfDayLabels)

	for _, rec := range records {
		ts, ok := rec.AuthorTime()
		if !ok {
			continue
		}

		h[timeOfDayIndex(ts.In(loc).Hour())].Count++
	}

	return h
}

func timeOfDayIndex(hour int) int {
	switch {
	case hour < afternoonStartHour:
		return 0
	case hour < eveningStartHour:
		return 1
	case hour < nightStartHour:
		return 2
	default:
		return 3
	}
}

// Sizes counts first-file patches by line count. Commits without a patch are
// not counted.
func Sizes(records []*commit.Record) Histogram {
	h := newHistogram(SizeLabels())

	for _, rec := range records {
		patch, ok := rec.FirstPatch()
		if !ok {
			continue
		}

		h[sizeIndex(diffclean.LineCount(patch))].Count++
	}

	return h
}

func sizeIndex(lines int) int {
	for i, r := range sizeRanges {
		if r.max < 0 || lines <= r.max {
			return i
		}
	}

	return len(sizeRanges) - 1
}

// Options configures Compute.
type Options struct {
	// Location is the time zone for weekday and hour bucketing. Nil means UTC.
	Location *time.Location
}

// Snapshot is the full statistics of a commit set.
type Snapshot struct {
	Commits           int              `json:"commits" yaml:"commits"`
	AvgLOC            float64          `json:"avg_loc" yaml:"avg_loc"`
	HasAvgLOC         bool             `json:"has_avg_loc" yaml:"has_avg_loc"`
	Convention        Convention       `json:"convention" yaml:"convention"`
	ConventionCounts  ConventionCounts `json:"convention_counts" yaml:"convention_counts"`
	DominantWeekday   string           `json:"dominant_weekday" yaml:"dominant_weekday"`
	DominantTimeOfDay string           `json:"dominant_time_of_day" yaml:"dominant_time_of_day"`
	Weekdays          Histogram        `json:"weekdays" yaml:"weekdays"`
	TimesOfDay        Histogram        `json:"times_of_day" yaml:"times_of_day"`
	Sizes             Histogram        `json:"sizes" yaml:"sizes"`
}

// Compute derives every statistic from records.
func Compute(records []*commit.Record, opts Options) Snapshot {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	n := 0

	for _, rec := range records {
		if rec != nil {
			n++
		}
	}

	avg, hasAvg := AverageLOC(records)
	conventions := Conventions(records)
	weekdays := Weekdays(records, loc)
	times := TimesOfDay(records, loc)

	return Snapshot{
		Commits:           n,
		AvgLOC:            avg,
		HasAvgLOC:         hasAvg,
		Convention:        conventions.Dominant(),
		ConventionCounts:  conventions,
		DominantWeekday:   weekdays.Dominant(),
		DominantTimeOfDay: times.Dominant(),
		Weekdays:          weekdays,
		TimesOfDay:        times,
		Sizes:             Sizes(records),
	}
}

// Facts returns the fun-fact sentences of the snapshot. The average line is
// left out when no commit carries a patch.
func (s Snapshot) Facts() []string {
	var out []string

	if s.HasAvgLOC {
		out = append(out, fmt.Sprintf("I average %.2f lines of code (LOC) per commit", s.AvgLOC))
	}

	return append(out,
		fmt.Sprintf("I consistently follow the %s programming convention", s.Convention),
		fmt.Sprintf("My most productive days are %ss", s.DominantWeekday),
		fmt.Sprintf("I commit my code in %ss", s.DominantTimeOfDay),
	)
}
