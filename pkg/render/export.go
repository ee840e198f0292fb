package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sumatoshi-tech/commitlens/pkg/dashboard"
)

// File names written by ExportFiles.
const (
	AreaFile     = "commit-languages-area-chart.svg"
	PieFile      = "commit-languages-pie-chart.svg"
	WeekdaysFile = "commits-over-day-of-week.svg"
	SizesFile    = "commits-over-LOC.svg"

	dirPerm  = 0o750
	filePerm = 0o600
)

// ExportFiles writes one SVG per laid out chart into dir and returns the
// written paths. The language charts carry the legend above them. Charts that
// were not laid out are skipped.
func ExportFiles(dir string, d dashboard.Dashboard) ([]string, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	type job struct {
		name   string
		render func(*bytes.Buffer) error
	}

	var jobs []job

	if d.Area != nil && d.Legend != nil {
		jobs = append(jobs,
			job{AreaFile, func(b *bytes.Buffer) error { return CombinedSVG(b, d.Legend, d.Area) }},
			job{PieFile, func(b *bytes.Buffer) error { return CombinedSVG(b, d.Legend, d.Pie) }},
		)
	}

	if d.Weekdays != nil {
		jobs = append(jobs, job{WeekdaysFile, func(b *bytes.Buffer) error { return SVG(b, d.Weekdays) }})
	}

	if d.Sizes != nil {
		jobs = append(jobs, job{SizesFile, func(b *bytes.Buffer) error { return SVG(b, d.Sizes) }})
	}

	paths := make([]string, 0, len(jobs))

	for _, j := range jobs {
		var buf bytes.Buffer
		if err := j.render(&buf); err != nil {
			return paths, fmt.Errorf("render %s: %w", j.name, err)
		}

		path := filepath.Join(dir, j.name)
		if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
			return paths, fmt.Errorf("write %s: %w", j.name, err)
		}

		paths = append(paths, path)
	}

	return paths, nil
}
