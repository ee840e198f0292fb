package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/commitlens/pkg/dashboard"
	"github.com/Sumatoshi-tech/commitlens/pkg/stats"
)

const (
	barLength       = 20
	percentageValue = 100
)

// palette holds the colors of one summary. Colors are per call so concurrent
// summaries never race on the library-wide switch.
type palette struct {
	header *color.Color
	fact   *color.Color
	muted  *color.Color
}

func newPalette(colorize bool) palette {
	p := palette{
		header: color.New(color.FgCyan, color.Bold),
		fact:   color.New(color.FgGreen),
		muted:  color.New(color.FgYellow),
	}

	for _, c := range []*color.Color{p.header, p.fact, p.muted} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Summary writes the fun facts and per-chart tables of d as plain text.
func Summary(w io.Writer, d dashboard.Dashboard, colorize bool) error {
	p := newPalette(colorize)

	var b strings.Builder

	p.header.Fprintf(&b, "=== COMMITLENS ===\n")
	fmt.Fprintf(&b, "Commits: %s | Classified: %s\n\n", humanize.Comma(int64(d.Commits)), humanize.Comma(int64(d.Classified)))

	if d.HasStats {
		for _, fact := range d.Facts() {
			p.fact.Fprintf(&b, "* %s\n", fact)
		}

		b.WriteString("\n")
		writeHistogram(&b, p, WeekdaysTitle, d.Stats.Weekdays)
		writeHistogram(&b, p, "Commits over time of day", d.Stats.TimesOfDay)
		writeHistogram(&b, p, SizesTitle, d.Stats.Sizes)
	} else {
		p.muted.Fprintf(&b, "%s\n\n", dashboard.Placeholder)
	}

	if d.HasData {
		writeLanguages(&b, p, d)
	} else {
		p.header.Fprintf(&b, "%s:\n", PieTitle)
		p.muted.Fprintf(&b, "%s\n", d.Placeholder)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	return tbl
}

func writeHistogram(b *strings.Builder, p palette, title string, h stats.Histogram) {
	total := h.Total()
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Bucket", "Commits", "Share"})

	for _, bucket := range h {
		tbl.AppendRow(table.Row{bucket.Label, humanize.Comma(int64(bucket.Count)), shareBar(bucket.Count, total)})
	}

	tbl.AppendFooter(table.Row{"Total", humanize.Comma(int64(total)), ""})

	p.header.Fprintf(b, "%s:\n", title)
	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
}

func writeLanguages(b *strings.Builder, p palette, d dashboard.Dashboard) {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Language", "Color", "Commits", "Share"})

	sum := 0
	for _, s := range d.Totals {
		sum += s.Count
	}

	for _, s := range d.Totals {
		tbl.AppendRow(table.Row{s.Language, s.Color, humanize.Comma(int64(s.Count)), shareBar(s.Count, sum)})
	}

	tbl.AppendFooter(table.Row{"Total", "", humanize.Comma(int64(sum)), ""})

	p.header.Fprintf(b, "%s:\n", PieTitle)
	b.WriteString(tbl.Render())
	b.WriteString("\n")

	if n := len(d.Stack.Timestamps); n > 0 {
		first, last := d.Stack.Timestamps[0], d.Stack.Timestamps[n-1]
		fmt.Fprintf(b, "Span: %s to %s (%s)\n", first.Format(timestampLayout), last.Format(timestampLayout),
			strings.TrimSuffix(humanize.RelTime(first, last, "", ""), " "))
	}
}

// shareBar renders count/total as a fixed width bar with a percentage.
func shareBar(count, total int) string {
	if total <= 0 {
		return ""
	}

	ratio := float64(count) / float64(total)
	filled := int(ratio * barLength)

	return fmt.Sprintf("%s%s %.1f%%", strings.Repeat("█", filled), strings.Repeat("░", barLength-filled), ratio*percentageValue)
}
