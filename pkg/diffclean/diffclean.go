// Package diffclean extracts changed source lines from unified diff text.
package diffclean

import "strings"

const (
	hunkPrefix = "@@"
	newline    = "\n"
)

// Sanitize keeps only added and removed lines of a unified diff, with their
// leading '+' or '-' stripped. Hunk headers are dropped and the line after a
// header is processed like any other. Context lines are discarded.
func Sanitize(patch string) string {
	if patch == "" {
		return ""
	}

	lines := strings.Split(patch, newline)
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, hunkPrefix):
			continue
		case strings.HasPrefix(line, "+"), strings.HasPrefix(line, "-"):
			kept = append(kept, line[1:])
		}
	}

	return strings.Join(kept, newline)
}

// LineCount returns the number of lines of a patch. An empty patch counts as one
// line.
func LineCount(patch string) int {
	return strings.Count(patch, newline) + 1
}
