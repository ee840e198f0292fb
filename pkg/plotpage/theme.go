package plotpage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTheme is returned for a theme name other than light or dark.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme represents a color theme for the HTML report.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme resolves a theme name case-insensitively.
func ParseTheme(name string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(name))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
}

// ThemeConfig holds the styling values of a theme.
type ThemeConfig struct {
	Background string

	TextPrimary string
	TextMuted   string

	// Series is the color of single-series charts.
	Series string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// EChartsTheme is the built-in ECharts theme name, empty for the default.
	EChartsTheme string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	switch theme {
	case ThemeDark:
		return darkTheme
	case ThemeLight:
		return lightTheme
	default:
		return lightTheme
	}
}

var lightTheme = ThemeConfig{
	Background:  "#f5f5f5",
	TextPrimary: "#1c1917", // stone-900.
	TextMuted:   "#595959",

	Series: "#1565c0",

	ChartBackground: "#ffffff",
	ChartGrid:       "#e7e5e4", // stone-200.
	ChartAxis:       "#a8a29e", // stone-400.
	ChartText:       "#44403c", // stone-700.
	ChartTextMuted:  "#78716c", // stone-500.
}

var darkTheme = ThemeConfig{
	Background:  "#0c0a09", // stone-950.
	TextPrimary: "#fafaf9", // stone-50.
	TextMuted:   "#a8a29e", // stone-400.

	Series: "#104d93",

	ChartBackground: "#1c1917", // stone-900.
	ChartGrid:       "#44403c", // stone-700.
	ChartAxis:       "#57534e", // stone-600.
	ChartText:       "#d6d3d1", // stone-300.
	ChartTextMuted:  "#a8a29e", // stone-400.

	EChartsTheme: "dark",
}
