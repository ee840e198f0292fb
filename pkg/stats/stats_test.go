package stats_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/commitlens/pkg/commit"
	"github.com/Sumatoshi-tech/commitlens/pkg/stats"
)

func rec(ts time.Time, patch string) *commit.Record {
	return &commit.Record{
		Timestamp: &ts,
		Files:     []commit.File{{Filename: "f.ts", Patch: patch, HasPatch: true}},
	}
}

func lines(n int) string {
	return strings.Repeat("+x\n", n-1) + "+x"
}

func TestConventions(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name  string
		patch string
		want  stats.Convention
	}{
		{"camel and snake tie", "@@ -1 +1 @@\n+let userName = 1\n+let first_name = 2\n+let last_name = 3\n+class HttpServer {}", stats.CamelCase},
		{"snake wins", "+let first_name = 2\n+let last_name = 3\n+x = max_len", stats.SnakeCase},
		{"kebab only", "+.nav-bar { color: red }", stats.KebabCase},
		{"pascal only", "+HTTPServer", stats.PascalCase},
		{"no identifiers", "+1 + 2", stats.CamelCase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recs := []*commit.Record{rec(now, tt.patch)}
			assert.Equal(t, tt.want, stats.DominantConvention(recs))
		})
	}
}

func TestConventions_Counts(t *testing.T) {
	t.Parallel()

	recs := []*commit.Record{
		nil,
		rec(time.Now(), "@@ -1 +1 @@\n+let userName = 1\n+let first_name = 2\n+let last_name = 3\n+class HttpServer {}"),
		{Files: []commit.File{{Filename: "x.bin"}}},
	}

	counts := stats.Conventions(recs)
	assert.Equal(t, 2, counts[stats.CamelCase])
	assert.Equal(t, 2, counts[stats.SnakeCase])
	assert.Equal(t, 1, counts[stats.PascalCase])
	assert.Equal(t, 0, counts[stats.KebabCase])
}

func TestAverageLOC(t *testing.T) {
	t.Parallel()

	now := time.Now()

	avg, ok := stats.AverageLOC([]*commit.Record{
		rec(now, "a\nb"),
		rec(now, "a"),
		{Timestamp: &now},
		nil,
	})
	require.True(t, ok)
	assert.InDelta(t, 1.5, avg, 1e-9)

	avg, ok = stats.AverageLOC([]*commit.Record{nil, nil})
	assert.False(t, ok)
	assert.Zero(t, avg)

	avg, ok = stats.AverageLOC(nil)
	assert.False(t, ok)
	assert.Zero(t, avg)
}

func TestSizes(t *testing.T) {
	t.Parallel()

	now := time.Now()
	recs := []*commit.Record{
		rec(now, lines(1)),
		rec(now, lines(10)),
		rec(now, lines(11)),
		rec(now, lines(500)),
		rec(now, lines(501)),
		{Timestamp: &now},
		nil,
	}

	h := stats.Sizes(recs)
	assert.Equal(t, stats.SizeLabels(), h.Labels())
	assert.Equal(t, []int{2, 1, 0, 0, 0, 1, 1}, h.Counts())
	assert.Equal(t, 5, h.Total())
}

func TestWeekdaysAndTimesOfDay_Example(t *testing.T) {
	t.Parallel()

	// 2024-01-01 is a Monday.
	recs := []*commit.Record{
		rec(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "+a"),
		rec(time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC), "+a"),
		rec(time.Date(2024, 1, 8, 21, 0, 0, 0, time.UTC), "+a"),
	}

	weekdays := stats.Weekdays(recs, time.UTC)
	assert.Equal(t, []int{0, 2, 1, 0, 0, 0, 0}, weekdays.Counts())
	assert.Equal(t, "Monday", weekdays.Dominant())
	assert.Equal(t, 3, weekdays.Total())

	times := stats.TimesOfDay(recs, time.UTC)
	assert.Equal(t, []int{1, 1, 0, 1}, times.Counts())
	assert.Equal(t, stats.Morning, times.Dominant())
}

func TestTimesOfDay_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hour int
		want string
	}{
		{0, stats.Morning},
		{11, stats.Morning},
		{12, stats.Afternoon},
		{16, stats.Afternoon},
		{17, stats.Evening},
		{19, stats.Evening},
		{20, stats.Night},
		{23, stats.Night},
	}

	for _, tt := range tests {
		recs := []*commit.Record{rec(time.Date(2024, 1, 1, tt.hour, 30, 0, 0, time.UTC), "+a")}
		h := stats.TimesOfDay(recs, time.UTC)
		assert.Equal(t, 1, h.Count(tt.want), "hour %d", tt.hour)
	}
}

func TestWeekdays_Location(t *testing.T) {
	t.Parallel()

	est := time.FixedZone("EST", -5*60*60)
	recs := []*commit.Record{rec(time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC), "+a")}

	assert.Equal(t, "Monday", stats.Weekdays(recs, time.UTC).Dominant())
	assert.Equal(t, "Sunday", stats.Weekdays(recs, est).Dominant())
	assert.Equal(t, stats.Night, stats.TimesOfDay(recs, est).Dominant())
}

func TestHistogram_Dominant(t *testing.T) {
	t.Parallel()

	h := stats.Histogram{{Label: "a", Count: 1}, {Label: "b", Count: 3}, {Label: "c", Count: 3}}
	assert.Equal(t, "b", h.Dominant())
	assert.Equal(t, 7, h.Total())
	assert.Equal(t, 3, h.Max())
	assert.Equal(t, 0, h.Count("missing"))

	assert.Empty(t, stats.Histogram{}.Dominant())
}

func TestCompute(t *testing.T) {
	t.Parallel()

	recs := []*commit.Record{
		rec(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "+let first_name = 1\n+let last_name = 2"),
		nil,
		rec(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), "+let user_id = 3"),
	}

	snap := stats.Compute(recs, stats.Options{})
	assert.Equal(t, 2, snap.Commits)
	assert.True(t, snap.HasAvgLOC)
	assert.InDelta(t, 1.5, snap.AvgLOC, 1e-9)
	assert.Equal(t, stats.SnakeCase, snap.Convention)
	assert.Equal(t, "Monday", snap.DominantWeekday)
	assert.Equal(t, stats.Morning, snap.DominantTimeOfDay)
	assert.Equal(t, 2, snap.Sizes.Total())

	assert.Equal(t, []string{
		"I average 1.50 lines of code (LOC) per commit",
		"I consistently follow the snake_case programming convention",
		"My most productive days are Mondays",
		"I commit my code in mornings",
	}, snap.Facts())
}

func TestCompute_AllNull(t *testing.T) {
	t.Parallel()

	snap := stats.Compute([]*commit.Record{nil, nil, nil}, stats.Options{})
	assert.Zero(t, snap.Commits)
	assert.False(t, snap.HasAvgLOC)
	assert.Zero(t, snap.AvgLOC)
	assert.Equal(t, stats.CamelCase, snap.Convention)
	assert.Zero(t, snap.Weekdays.Total())
	assert.Zero(t, snap.TimesOfDay.Total())
	assert.Zero(t, snap.Sizes.Total())
	assert.Len(t, snap.Facts(), 3)
}
