// Package palette provides the color tokens charts draw with and the
// category-to-color assignment used by every chart component.
package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownColor is returned when a color token is neither a named color nor a hex value.
var ErrUnknownColor = errors.New("unknown color token")

// Color is a named color token (e.g. "blue") or a raw "#rrggbb" value.
type Color string

// Named color tokens.
const (
	Slate   Color = "slate"
	Gray    Color = "gray"
	Zinc    Color = "zinc"
	Neutral Color = "neutral"
	Stone   Color = "stone"
	Red     Color = "red"
	Orange  Color = "orange"
	Amber   Color = "amber"
	Yellow  Color = "yellow"
	Lime    Color = "lime"
	Green   Color = "green"
	Emerald Color = "emerald"
	Teal    Color = "teal"
	Cyan    Color = "cyan"
	Sky     Color = "sky"
	Blue    Color = "blue"
	Indigo  Color = "indigo"
	Violet  Color = "violet"
	Purple  Color = "purple"
	Fuchsia Color = "fuchsia"
	Pink    Color = "pink"
	Rose    Color = "rose"
)

// DefaultColor is used for categories that received no palette color.
const DefaultColor = Gray

const hexLen = 7 // len("#rrggbb").

// hexColors holds the 500 shade of every named token.
var hexColors = map[Color]string{
	Slate:   "#64748b",
	Gray:    "#6b7280",
	Zinc:    "#71717a",
	Neutral: "#737373",
	Stone:   "#78716c",
	Red:     "#ef4444",
	Orange:  "#f97316",
	Amber:   "#f59e0b",
	Yellow:  "#eab308",
	Lime:    "#84cc16",
	Green:   "#22c55e",
	Emerald: "#10b981",
	Teal:    "#14b8a6",
	Cyan:    "#06b6d4",
	Sky:     "#0ea5e9",
	Blue:    "#3b82f6",
	Indigo:  "#6366f1",
	Violet:  "#8b5cf6",
	Purple:  "#a855f7",
	Fuchsia: "#d946ef",
	Pink:    "#ec4899",
	Rose:    "#f43f5e",
}

// ThemeColorRange is the default palette, cool hues first.
var ThemeColorRange = []Color{
	Blue, Cyan, Sky, Indigo, Violet, Purple, Fuchsia,
	Slate, Gray, Zinc, Neutral, Stone,
	Red, Orange, Amber, Yellow, Lime, Green, Emerald, Teal,
	Pink, Rose,
}

// Valid reports whether c is a named token or a well-formed hex value.
func (c Color) Valid() bool {
	if _, ok := hexColors[c]; ok {
		return true
	}

	return isHex(string(c))
}

// Hex returns the hex value of the token. Unknown tokens resolve to the default color.
func (c Color) Hex() string {
	if hex, ok := hexColors[c]; ok {
		return hex
	}

	if isHex(string(c)) {
		return strings.ToLower(string(c))
	}

	return hexColors[DefaultColor]
}

// RGBA returns the token as a CSS rgba() value with the given opacity.
func (c Color) RGBA(opacity float64) string {
	hex := c.Hex()

	r, _ := strconv.ParseUint(hex[1:3], 16, 8)
	g, _ := strconv.ParseUint(hex[3:5], 16, 8)
	b, _ := strconv.ParseUint(hex[5:7], 16, 8)

	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(opacity, 'f', -1, 64))
}

// ID returns a token usable inside element ids.
func (c Color) ID() string {
	return strings.TrimPrefix(strings.ToLower(string(c)), "#")
}

func isHex(s string) bool {
	if len(s) != hexLen || s[0] != '#' {
		return false
	}

	_, err := strconv.ParseUint(s[1:], 16, 32)

	return err == nil
}

// ParseColors converts raw tokens into colors, rejecting unknown ones.
func ParseColors(tokens []string) ([]Color, error) {
	colors := make([]Color, 0, len(tokens))

	for _, token := range tokens {
		c := Color(strings.TrimSpace(token))
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, token)
		}

		colors = append(colors, c)
	}

	return colors, nil
}

// Names returns every named token in palette order.
func Names() []Color {
	names := make([]Color, len(ThemeColorRange))
	copy(names, ThemeColorRange)

	return names
}
