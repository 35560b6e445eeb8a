package usecase

import (
	"maps"
	"slices"
	"strings"
)

// DefaultFallbackColor is used for languages missing from a ColorTable.
const DefaultFallbackColor = "#6f42c1"

var defaultLanguageColors = map[string]string{
	"JavaScript":       "#f1e05a",
	"TypeScript":       "#2b7489",
	"Python":           "#3572A5",
	"Java":             "#b07219",
	"C++":              "#f34b7d",
	"C#":               "#178600",
	"Go":               "#00ADD8",
	"Rust":             "#dea584",
	"PHP":              "#4F5D95",
	"Ruby":             "#701516",
	"Swift":            "#ffac45",
	"Kotlin":           "#F18E33",
	"Dart":             "#00B4AB",
	"Scala":            "#c22d40",
	"R":                "#198CE7",
	"MATLAB":           "#e16737",
	"Shell":            "#89e051",
	"HTML":             "#e34c26",
	"CSS":              "#563d7c",
	"Vue":              "#2c3e50",
	"React":            "#61dafb",
	"Angular":          "#dd0031",
	"Svelte":           "#ff3e00",
	"Solidity":         "#363636",
	"Assembly":         "#6E4C13",
	"C":                "#555555",
	"Objective-C":      "#438eff",
	"Perl":             "#0298c3",
	"Lua":              "#000080",
	"Haskell":          "#5D4F85",
	"Clojure":          "#db5855",
	"Elixir":           "#6e4a7e",
	"Erlang":           "#B83998",
	"F#":               "#b845fc",
	"OCaml":            "#3be133",
	"Racket":           "#3c5caa",
	"Scheme":           "#1f4f79",
	"Prolog":           "#74283c",
	"COBOL":            "#d4d4d4",
	"Fortran":          "#4d41b1",
	"Ada":              "#02f88c",
	"Lisp":             "#3fb68b",
	"Groovy":           "#e69f56",
	"PowerShell":       "#012456",
	"Batchfile":        "#C1F12E",
	"Makefile":         "#427819",
	"Dockerfile":       "#384d54",
	"YAML":             "#cb171e",
	"JSON":             "#000000",
	"Markdown":         "#083fa1",
	"TeX":              "#3D6117",
	"Jupyter Notebook": "#DA5B0B",
	"Vim script":       "#199f4b",
	"Emacs Lisp":       "#c065db",
	"VimL":             "#199f4b",
	"Nix":              "#7e7eff",
	"Nim":              "#ffc200",
	"Crystal":          "#000100",
	"Zig":              "#ec915c",
	"V":                "#4f87c4",
	"Carbon":           "#5E8C31",
	"Mojo":             "#ff4c4c",
}

// ColorTable maps language names to hex display colors.
// It is immutable once built; WithOverrides returns a new table.
type ColorTable struct {
	colors   map[string]string
	folded   map[string]string
	fallback string
}

// DefaultColors returns the built-in language color table.
func DefaultColors() ColorTable {
	return NewColorTable(defaultLanguageColors, DefaultFallbackColor)
}

// NewColorTable builds a table from colors. An empty fallback means DefaultFallbackColor.
func NewColorTable(colors map[string]string, fallback string) ColorTable {
	if fallback == "" {
		fallback = DefaultFallbackColor
	}
	t := ColorTable{
		colors:   make(map[string]string, len(colors)),
		folded:   make(map[string]string, len(colors)),
		fallback: fallback,
	}
	for lang, color := range colors {
		t.colors[lang] = color
		t.folded[strings.ToLower(lang)] = color
	}
	return t
}

// WithOverrides layers overrides on top of t. Override keys match languages case-insensitively,
// since config loaders commonly lower-case map keys.
func (t ColorTable) WithOverrides(overrides map[string]string, fallback string) ColorTable {
	merged := maps.Clone(t.colors)
	if merged == nil {
		merged = make(map[string]string, len(overrides))
	}
	for key, color := range overrides {
		name := key
		for lang := range t.colors {
			if strings.EqualFold(lang, key) {
				name = lang
				break
			}
		}
		merged[name] = color
	}
	if fallback == "" {
		fallback = t.fallback
	}
	return NewColorTable(merged, fallback)
}

// Lookup returns the color for language, falling back to the table's default.
func (t ColorTable) Lookup(language string) string {
	if color, ok := t.colors[language]; ok {
		return color
	}
	if color, ok := t.folded[strings.ToLower(language)]; ok {
		return color
	}
	return t.Fallback()
}

// Fallback returns the color used for unknown languages.
func (t ColorTable) Fallback() string {
	if t.fallback == "" {
		return DefaultFallbackColor
	}
	return t.fallback
}

// Languages returns the known language names in alphabetical order.
func (t ColorTable) Languages() []string {
	return slices.Sorted(maps.Keys(t.colors))
}
