// Package langdetect guesses the programming language of a commit from its first
// changed file and assigns the language's canonical color.
package langdetect

import "maps"

// Entry is one language of a color table.
type Entry struct {
	Language string
	Color    string
}

// ColorTable is an immutable language to color mapping. It also defines the
// closed vocabulary the classifier may answer with; its order is the tie-break
// order of the scorer.
type ColorTable struct {
	order  []string
	colors map[string]string
}

// NewColorTable builds a table from entries. Later duplicates are ignored.
func NewColorTable(entries []Entry) *ColorTable {
	t := &ColorTable{
		order:  make([]string, 0, len(entries)),
		colors: make(map[string]string, len(entries)),
	}

	for _, e := range entries {
		if e.Language == "" {
			continue
		}

		if _, dup := t.colors[e.Language]; dup {
			continue
		}

		t.order = append(t.order, e.Language)
		t.colors[e.Language] = e.Color
	}

	return t
}

// Color returns the canonical color of a language.
func (t *ColorTable) Color(language string) (string, bool) {
	c, ok := t.colors[language]

	return c, ok
}

// Has reports whether the language belongs to the vocabulary.
func (t *ColorTable) Has(language string) bool {
	_, ok := t.colors[language]

	return ok
}

// Languages returns the vocabulary in table order.
func (t *ColorTable) Languages() []string {
	return append([]string(nil), t.order...)
}

// Colors returns a copy of the mapping.
func (t *ColorTable) Colors() map[string]string {
	return maps.Clone(t.colors)
}

// Len returns the vocabulary size.
func (t *ColorTable) Len() int {
	return len(t.order)
}

// Colors follow GitHub linguist.
var defaultEntries = []Entry{
	{"JavaScript", "#f1e05a"},
	{"TypeScript", "#3178c6"},
	{"Python", "#3572A5"},
	{"Java", "#b07219"},
	{"Go", "#00ADD8"},
	{"C++", "#f34b7d"},
	{"C", "#555555"},
	{"C#", "#178600"},
	{"PHP", "#4F5D95"},
	{"Ruby", "#701516"},
	{"Rust", "#dea584"},
	{"Kotlin", "#A97BFF"},
	{"Swift", "#F05138"},
	{"Objective-C", "#438eff"},
	{"Scala", "#c22d40"},
	{"Dart", "#00B4AB"},
	{"Shell", "#89e051"},
	{"PowerShell", "#012456"},
	{"HTML", "#e34c26"},
	{"CSS", "#563d7c"},
	{"SCSS", "#c6538c"},
	{"Vue", "#41b883"},
	{"Svelte", "#ff3e00"},
	{"SQL", "#e38c00"},
	{"Markdown", "#083fa1"},
	{"JSON", "#292929"},
	{"YAML", "#cb171e"},
	{"TOML", "#9c4221"},
	{"XML", "#0060ac"},
	{"Dockerfile", "#384d54"},
	{"Makefile", "#427819"},
	{"Lua", "#000080"},
	{"Perl", "#0298c3"},
	{"R", "#198CE7"},
	{"Julia", "#a270ba"},
	{"Haskell", "#5e5086"},
	{"Elixir", "#6e4a7e"},
	{"Erlang", "#B83998"},
	{"Clojure", "#db5855"},
	{"Groovy", "#4298b8"},
	{"F#", "#b845fc"},
	{"OCaml", "#3be133"},
	{"Elm", "#60B5CC"},
	{"CoffeeScript", "#244776"},
	{"Zig", "#ec915c"},
	{"Nim", "#ffc200"},
	{"GraphQL", "#e10098"},
	{"Solidity", "#AA6746"},
}

var defaultTable = NewColorTable(defaultEntries)

// DefaultColorTable returns the built-in vocabulary. The returned table is shared
// and must not be modified.
func DefaultColorTable() *ColorTable {
	return defaultTable
}
