package chart

import (
	"unicode/utf8"

	"github.com/Sumatoshi-tech/chartkit/pkg/palette"
)

// Legend layout defaults, in pixels.
const (
	DefaultLegendHeight = 60
	legendPadding       = 20
	legendRowHeight     = 28
	legendMarkerWidth   = 14
	legendItemGap       = 12
	legendCharWidth     = 7
)

// LegendItem is one category entry of a legend. Key is the category the
// entry belongs to; renderers may change Name but must keep Key.
type LegendItem struct {
	Key   string
	Name  string
	Color palette.Color
	Hex   string
}

// LegendContent is what a legend renderer produced: the entries to draw and
// the rows they occupy at the available width.
type LegendContent struct {
	Items []LegendItem
	Rows  int
}

// LegendRenderer lays out legend entries. Implementations may reorder, rename
// or drop items.
type LegendRenderer interface {
	RenderLegend(items []LegendItem, width int) LegendContent
}

// DefaultLegend wraps entries left to right into rows no wider than width.
type DefaultLegend struct{}

// RenderLegend implements LegendRenderer.
func (DefaultLegend) RenderLegend(items []LegendItem, width int) LegendContent {
	if len(items) == 0 {
		return LegendContent{}
	}

	if width <= 0 {
		return LegendContent{Items: items, Rows: 1}
	}

	rows, used := 1, 0

	for _, item := range items {
		w := legendItemWidth(item)
		if used > 0 && used+w > width {
			rows++
			used = 0
		}

		used += w
	}

	return LegendContent{Items: items, Rows: rows}
}

func legendItemWidth(item LegendItem) int {
	return legendMarkerWidth + utf8.RuneCountInString(item.Name)*legendCharWidth + legendItemGap
}

// LegendLayout carries the measured legend height between renders. It starts
// at DefaultLegendHeight so multi-row legends are not clipped before the first
// measurement.
type LegendLayout struct {
	height int
}

// NewLegendLayout returns a layout at the default height.
func NewLegendLayout() *LegendLayout {
	return &LegendLayout{height: DefaultLegendHeight}
}

// Height returns the current legend height.
func (l *LegendLayout) Height() int {
	return l.height
}

// Measure updates the height from rendered content and reports whether it
// changed, which is the cue for the caller to compose again.
func (l *LegendLayout) Measure(content LegendContent) bool {
	rows := content.Rows
	if rows < 1 {
		rows = 1
	}

	height := rows*legendRowHeight + legendPadding
	if height == l.height {
		return false
	}

	l.height = height

	return true
}

func legendItems(m palette.Mapping) []LegendItem {
	items := make([]LegendItem, 0, m.Len())

	for _, category := range m.Categories() {
		c := m.ColorOf(category)
		items = append(items, LegendItem{Key: category, Name: category, Color: c, Hex: c.Hex()})
	}

	return items
}
