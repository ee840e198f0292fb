package langdetect

import "strings"

// aliases maps detector identifiers onto display names of the vocabulary.
var aliases = map[string]string{
	"TSX":                "TypeScript",
	"JSX":                "JavaScript",
	"Objective-C++":      "Objective-C",
	"JSON with Comments": "JSON",
	"JSON5":              "JSON",
	"HTML+ERB":           "HTML",
	"HTML+Razor":         "HTML",
	"HTML+PHP":           "PHP",
	"Sass":               "SCSS",
	"PLSQL":              "SQL",
	"PLpgSQL":            "SQL",
	"TSQL":               "SQL",
	"SQLPL":              "SQL",
	"Bash":               "Shell",
	"sh":                 "Shell",
	"Perl 6":             "Perl",
	"Raku":               "Perl",
	"Gradle":             "Groovy",
	"golang":             "Go",
	"py":                 "Python",
	"js":                 "JavaScript",
	"ts":                 "TypeScript",
	"rb":                 "Ruby",
	"rs":                 "Rust",
	"kt":                 "Kotlin",
	"cs":                 "C#",
	"cpp":                "C++",
	"yml":                "YAML",
	"md":                 "Markdown",
}

// Canonical resolves a detector identifier to a language of the table.
func Canonical(table *ColorTable, id string) (string, bool) {
	if id == "" {
		return "", false
	}

	if table.Has(id) {
		return id, true
	}

	if name, ok := aliases[id]; ok && table.Has(name) {
		return name, true
	}

	for _, lang := range table.order {
		if strings.EqualFold(lang, id) {
			return lang, true
		}
	}

	return "", false
}
