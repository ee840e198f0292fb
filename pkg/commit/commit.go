// Package commit defines the commit records consumed by the analytics pipeline
// and the classified commits it produces.
package commit

import (
	"strings"
	"time"
)

// File is a single changed file of a commit.
type File struct {
	Filename string `json:"filename" yaml:"filename"`
	Patch    string `json:"patch,omitempty" yaml:"patch,omitempty"`

	// HasPatch distinguishes an empty patch from a missing one. The hosting API
	// omits the patch for binary and oversized files.
	HasPatch bool `json:"has_patch" yaml:"has_patch"`
}

// Extension returns the text after the last dot of the base filename, or ""
// when the name has no dot.
func (f File) Extension() string {
	base := f.Filename
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}

	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}

	return base[idx+1:]
}

// Record is a commit as fetched from the hosting API. Records are read-only once
// constructed. A batch is a []*Record where nil marks a commit the upstream
// layer failed to resolve.
type Record struct {
	SHA        string     `json:"sha,omitempty" yaml:"sha,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	ParentURLs []string   `json:"parent_urls,omitempty" yaml:"parent_urls,omitempty"`
	Files      []File     `json:"files,omitempty" yaml:"files,omitempty"`
}

// FirstFile returns the first changed file. Only the first file of a commit
// takes part in classification and statistics.
func (r *Record) FirstFile() (File, bool) {
	if r == nil || len(r.Files) == 0 {
		return File{}, false
	}

	return r.Files[0], true
}

// FirstPatch returns the patch of the first changed file when present.
func (r *Record) FirstPatch() (string, bool) {
	f, ok := r.FirstFile()
	if !ok || !f.HasPatch {
		return "", false
	}

	return f.Patch, true
}

// AuthorTime returns the author timestamp when present.
func (r *Record) AuthorTime() (time.Time, bool) {
	if r == nil || r.Timestamp == nil {
		return time.Time{}, false
	}

	return *r.Timestamp, true
}

// Classified is the language guess for one commit. A nil *Classified is the
// failure sentinel kept at the commit's index.
type Classified struct {
	Language  string    `json:"language" yaml:"language"`
	Color     string    `json:"color" yaml:"color"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// CountSuccesses returns the number of non-nil entries.
func CountSuccesses(results []*Classified) int {
	n := 0

	for _, r := range results {
		if r != nil {
			n++
		}
	}

	return n
}
