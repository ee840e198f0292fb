package langdetect

import (
	"path"
	"slices"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/commitlens/pkg/commit"
	"github.com/Sumatoshi-tech/commitlens/pkg/diffclean"
)

// defaultMinRelevance is the score an unhinted guess must reach.
const defaultMinRelevance = 3

// Classifier maps a commit onto a language of its color table. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	table        *ColorTable
	minRelevance int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithColorTable replaces the built-in vocabulary.
func WithColorTable(t *ColorTable) Option {
	return func(c *Classifier) {
		if t != nil {
			c.table = t
		}
	}
}

// WithMinRelevance sets the score an unhinted guess must reach.
func WithMinRelevance(n int) Option {
	return func(c *Classifier) {
		c.minRelevance = n
	}
}

// NewClassifier creates a Classifier.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		table:        DefaultColorTable(),
		minRelevance: defaultMinRelevance,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Table returns the classifier's color table.
func (c *Classifier) Table() *ColorTable {
	return c.table
}

// Classify returns the classified commit, or nil when the commit has no first
// file, no patch, no author timestamp, or a language outside the vocabulary.
func (c *Classifier) Classify(rec *commit.Record) *commit.Classified {
	file, ok := rec.FirstFile()
	if !ok || !file.HasPatch {
		return nil
	}

	ts, ok := rec.AuthorTime()
	if !ok {
		return nil
	}

	lang, ok := c.Detect(file.Patch, file.Filename)
	if !ok {
		return nil
	}

	color, ok := c.table.Color(lang)
	if !ok {
		return nil
	}

	return &commit.Classified{Language: lang, Color: color, Timestamp: ts}
}

// Detect guesses the language of a patch. The filename seeds the candidate set;
// the sanitized patch content decides between candidates.
func (c *Classifier) Detect(patch, filename string) (string, bool) {
	content := diffclean.Sanitize(patch)
	base := path.Base(filename)

	raw := c.hintIdentifiers(base)
	candidates := c.canonicalize(raw)

	switch len(candidates) {
	case 0:
		return c.best(content, c.table.order, c.minRelevance)
	case 1:
		return candidates[0], true
	}

	narrowed := c.canonicalize(enry.GetLanguagesByContent(base, []byte(content), raw))
	if len(narrowed) == 1 && slices.Contains(candidates, narrowed[0]) {
		return narrowed[0], true
	}

	lang, _ := c.best(content, candidates, 0)

	return lang, true
}

func (c *Classifier) hintIdentifiers(base string) []string {
	if base == "" || base == "." || base == "/" {
		return nil
	}

	if ids := enry.GetLanguagesByFilename(base, nil, nil); len(ids) > 0 {
		return ids
	}

	return enry.GetLanguagesByExtension(base, nil, nil)
}

func (c *Classifier) canonicalize(ids []string) []string {
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		name, ok := Canonical(c.table, id)
		if ok && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	return out
}

// best returns the highest scoring language; earlier entries win ties.
func (c *Classifier) best(content string, languages []string, minScore int) (string, bool) {
	if len(languages) == 0 {
		return "", false
	}

	bestLang, bestScore := languages[0], -1

	for _, lang := range languages {
		s := score(lang, content)
		if s > bestScore {
			bestLang, bestScore = lang, s
		}
	}

	if bestScore < minScore || (minScore > 0 && bestScore == 0) {
		return "", false
	}

	return bestLang, true
}
