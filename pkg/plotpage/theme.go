package plotpage

import (
	"fmt"
	"html/template"
	"strings"
)

// Theme represents a color theme for rendered pages.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme resolves a theme name; unknown names fall back to light.
func ParseTheme(name string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(name))) == ThemeDark {
		return ThemeDark
	}

	return ThemeLight
}

// ThemeConfig holds all theme-specific styling values.
type ThemeConfig struct {
	// Base colors.
	Background string
	Surface    string
	Border     string

	// Text colors.
	TextPrimary   string
	TextSecondary string
	TextMuted     string

	// Tooltip.
	TooltipBackground string
	TooltipBorder     string
	TooltipShadow     string

	// Chart-specific.
	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// ECharts theme name.
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

// CSS returns the page level rules that depend on the theme: body colors and
// the chart tooltip boxes.
func (t ThemeConfig) CSS() template.CSS {
	var b strings.Builder

	fmt.Fprintf(&b, "body{background:%s;color:%s;}", t.Background, t.TextPrimary)
	fmt.Fprintf(&b, ".ck-tooltip{background:%s;border:1px solid %s;border-radius:6px;"+
		"box-shadow:%s;padding:8px 0;font-size:12px;color:%s;min-width:140px;}",
		t.TooltipBackground, t.TooltipBorder, t.TooltipShadow, t.TextSecondary)
	fmt.Fprintf(&b, ".ck-tooltip-label{padding:0 12px 6px;margin-bottom:6px;"+
		"border-bottom:1px solid %s;font-weight:500;color:%s;}", t.TooltipBorder, t.TextPrimary)
	b.WriteString(".ck-tooltip-row{display:flex;align-items:center;gap:8px;padding:2px 12px;}")
	b.WriteString(".ck-tooltip-dot{width:8px;height:8px;border-radius:9999px;flex-shrink:0;}")
	b.WriteString(".ck-tooltip-name{flex:1;white-space:nowrap;}")
	fmt.Fprintf(&b, ".ck-tooltip-value{font-weight:500;color:%s;font-variant-numeric:tabular-nums;}",
		t.TextPrimary)

	return template.CSS(b.String())
}

var lightTheme = ThemeConfig{
	// Base - cool grays.
	Background: "#f9fafb", // gray-50.
	Surface:    "#ffffff",
	Border:     "#e5e7eb", // gray-200.

	// Text.
	TextPrimary:   "#111827", // gray-900.
	TextSecondary: "#374151", // gray-700.
	TextMuted:     "#6b7280", // gray-500.

	// Tooltip.
	TooltipBackground: "#ffffff",
	TooltipBorder:     "#e5e7eb", // gray-200.
	TooltipShadow:     "0 4px 6px -1px rgba(0, 0, 0, 0.1)",

	// Chart.
	ChartBackground: "transparent",
	ChartGrid:       "#e5e7eb", // gray-200.
	ChartAxis:       "#d1d5db", // gray-300.
	ChartText:       "#374151", // gray-700.
	ChartTextMuted:  "#6b7280", // gray-500.

	EChartsTheme: "",
}

var darkTheme = ThemeConfig{
	// Base - dark grays.
	Background: "#030712", // gray-950.
	Surface:    "#111827", // gray-900.
	Border:     "#1f2937", // gray-800.

	// Text.
	TextPrimary:   "#f9fafb", // gray-50.
	TextSecondary: "#d1d5db", // gray-300.
	TextMuted:     "#9ca3af", // gray-400.

	// Tooltip.
	TooltipBackground: "#111827", // gray-900.
	TooltipBorder:     "#374151", // gray-700.
	TooltipShadow:     "0 4px 6px -1px rgba(0, 0, 0, 0.4)",

	// Chart.
	ChartBackground: "transparent",
	ChartGrid:       "#1f2937", // gray-800.
	ChartAxis:       "#374151", // gray-700.
	ChartText:       "#d1d5db", // gray-300.
	ChartTextMuted:  "#9ca3af", // gray-400.

	EChartsTheme: "",
}
