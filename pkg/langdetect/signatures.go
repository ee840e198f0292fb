package langdetect

import "regexp"

type signature struct {
	re     *regexp.Regexp
	weight int
}

func sig(pattern string, weight int) signature {
	return signature{re: regexp.MustCompile(pattern), weight: weight}
}

// signatures holds the keyword patterns used to score content against a
// language. Languages without an entry can only be chosen from a filename hint.
var signatures = map[string][]signature{
	"Go": {
		sig(`(?m)^\s*package\s+\w+\s*$`, 3),
		sig(`\bfunc\s+(\(\w+\s+\*?\w+\)\s*)?\w+\(`, 3),
		sig(`\bif err != nil\b`, 4),
		sig(`:=`, 1),
		sig(`\bgo func\b|\bdefer\b|\bchan\b`, 2),
	},
	"Python": {
		sig(`(?m)^\s*def\s+\w+\(.*\)\s*(->\s*[\w\[\], .]+)?:\s*$`, 3),
		sig(`(?m)^\s*class\s+\w+(\(.*\))?:\s*$`, 3),
		sig(`(?m)^\s*(from\s+[\w.]+\s+)?import\s+[\w.]+`, 1),
		sig(`\bself\.`, 2),
		sig(`(?m)^\s*elif\b`, 3),
		sig(`\b(None|True|False)\b`, 1),
	},
	"JavaScript": {
		sig(`\b(const|let|var)\s+\w+\s*=\s*require\(`, 3),
		sig(`(?m)^\s*module\.exports\b`, 3),
		sig(`\bconsole\.log\(`, 2),
		sig(`\b(document|window)\.`, 2),
		sig(`\bfunction\s*\w*\s*\(`, 1),
		sig(`=>`, 1),
		sig(`===|!==`, 1),
	},
	"TypeScript": {
		sig(`:\s*(string|number|boolean|any|void|unknown|never)\b`, 3),
		sig(`\binterface\s+\w+\s*\{`, 2),
		sig(`\btype\s+\w+\s*=`, 2),
		sig(`\b(public|private|readonly)\s+\w+\s*:`, 2),
		sig(`(?m)^\s*import\s+.*\s+from\s+['"]`, 1),
	},
	"Java": {
		sig(`(?m)^\s*import\s+java\.`, 4),
		sig(`\bSystem\.out\.print`, 3),
		sig(`\bpublic\s+(static\s+)?(final\s+)?(class|interface|void|enum)\b`, 3),
		sig(`@Override\b`, 2),
		sig(`\bnew\s+\w+<`, 1),
	},
	"C": {
		sig(`(?m)^\s*#include\s*<\w+\.h>`, 3),
		sig(`\bprintf\s*\(`, 2),
		sig(`\b(malloc|free)\s*\(`, 2),
		sig(`\bint\s+main\s*\(`, 2),
	},
	"C++": {
		sig(`\bstd::`, 4),
		sig(`(?m)^\s*#include\s*<\w+>`, 3),
		sig(`\btemplate\s*<`, 3),
		sig(`\bcout\s*<<`, 3),
		sig(`\bnamespace\s+\w+`, 2),
	},
	"C#": {
		sig(`(?m)^\s*using\s+System`, 4),
		sig(`\{\s*get;\s*set;\s*\}`, 4),
		sig(`\bvar\s+\w+\s*=\s*new\b`, 2),
		sig(`\bnamespace\s+[\w.]+`, 1),
	},
	"Rust": {
		sig(`\blet\s+mut\b`, 4),
		sig(`\bfn\s+\w+\s*(<.*>)?\(`, 3),
		sig(`\bpub\s+(fn|struct|enum|mod)\b`, 3),
		sig(`(?m)^\s*use\s+\w+::`, 3),
		sig(`\bimpl\b`, 2),
		sig(`\w+!\(`, 1),
	},
	"Ruby": {
		sig(`(?m)^\s*attr_(accessor|reader|writer)\b`, 4),
		sig(`(?m)^\s*def\s+\w+[?!]?(\(.*\))?\s*$`, 3),
		sig(`\bdo\s*\|\w+`, 3),
		sig(`(?m)^\s*end\s*$`, 2),
		sig(`(?m)^\s*require\s+['"]`, 2),
		sig(`\bputs\b`, 2),
	},
	"PHP": {
		sig(`<\?php`, 5),
		sig(`\bfunction\s+\w+\s*\(\s*\$`, 3),
		sig(`\$\w+\s*=`, 2),
		sig(`->\w+\(`, 1),
		sig(`\becho\b`, 1),
	},
	"Kotlin": {
		sig(`\bdata\s+class\b`, 4),
		sig(`\bfun\s+\w+\s*\(`, 3),
		sig(`\bval\s+\w+\s*[:=]`, 2),
		sig(`\bwhen\s*\(`, 2),
	},
	"Swift": {
		sig(`\bimport\s+(UIKit|Foundation|SwiftUI)\b`, 5),
		sig(`\bguard\s+let\b`, 4),
		sig(`\bfunc\s+\w+\s*\(.*\)\s*->\s*\w+`, 2),
		sig(`\b(let|var)\s+\w+\s*:\s*\w+`, 1),
	},
	"Shell": {
		sig(`(?m)^#!/bin/(ba|z)?sh`, 5),
		sig(`(?m)^\s*(if|while)\s+\[\[?\s`, 3),
		sig(`(?m)^\s*(fi|done|esac)\s*$`, 3),
		sig(`(?m)^\s*export\s+\w+=`, 2),
		sig(`\$\{\w+\}`, 1),
	},
	"HTML": {
		sig(`(?i)<!DOCTYPE html>`, 5),
		sig(`</?(div|span|html|body|head|p|a|ul|li)\b[^>]*>`, 2),
	},
	"CSS": {
		sig(`@media\b`, 3),
		sig(`(?m)^\s*[\w-]+\s*:\s*[^;{]+;\s*$`, 1),
	},
	"SQL": {
		sig(`(?i)\bSELECT\b.+\bFROM\b`, 4),
		sig(`(?i)\b(INSERT\s+INTO|CREATE\s+TABLE|ALTER\s+TABLE)\b`, 4),
		sig(`(?i)\bWHERE\b`, 1),
	},
	"Markdown": {
		sig(`(?m)^#{1,6}\s+\S`, 2),
		sig("(?m)^```", 2),
		sig(`\[[^\]]+\]\([^)]+\)`, 2),
	},
	"JSON": {
		sig(`(?m)^\s*"[\w-]+"\s*:\s*`, 2),
	},
	"YAML": {
		sig(`(?m)^---\s*$`, 3),
		sig(`(?m)^\s*-\s+[\w-]+:\s`, 2),
		sig(`(?m)^\s*[\w-]+:\s*$`, 1),
	},
}

// score sums the weighted signature matches of content for one language.
func score(language, content string) int {
	total := 0

	for _, s := range signatures[language] {
		total += s.weight * len(s.re.FindAllStringIndex(content, -1))
	}

	return total
}
