package chart

import (
	"html"
	"strings"

	"github.com/Sumatoshi-tech/chartkit/pkg/palette"
)

// TooltipRow is one category value shown while hovering an index.
type TooltipRow struct {
	Category  string
	Color     palette.Color
	Hex       string
	Value     float64
	Formatted string
}

// TooltipPayload is everything shown for one hovered index.
type TooltipPayload struct {
	Label string
	Rows  []TooltipRow
}

// TooltipRenderer turns a payload into HTML. The output must not contain
// single quotes; callers embed it in script string literals.
type TooltipRenderer interface {
	RenderTooltip(p TooltipPayload) string
}

// DefaultTooltip renders a label header and one colored row per category.
type DefaultTooltip struct{}

// RenderTooltip implements TooltipRenderer.
func (DefaultTooltip) RenderTooltip(p TooltipPayload) string {
	if len(p.Rows) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(`<div class="ck-tooltip">`)
	b.WriteString(`<div class="ck-tooltip-label">`)
	b.WriteString(html.EscapeString(p.Label))
	b.WriteString(`</div>`)

	for _, row := range p.Rows {
		b.WriteString(`<div class="ck-tooltip-row">`)
		b.WriteString(`<span class="ck-tooltip-dot" style="background:`)
		b.WriteString(row.Hex)
		b.WriteString(`"></span>`)
		b.WriteString(`<span class="ck-tooltip-name">`)
		b.WriteString(html.EscapeString(row.Category))
		b.WriteString(`</span>`)
		b.WriteString(`<span class="ck-tooltip-value">`)
		b.WriteString(html.EscapeString(row.Formatted))
		b.WriteString(`</span></div>`)
	}

	b.WriteString(`</div>`)

	return b.String()
}

func tooltipPayload(rec Record, index string, m palette.Mapping, categories []string, format ValueFormatter) TooltipPayload {
	p := TooltipPayload{Label: rec.Label(index)}

	for _, category := range categories {
		v, ok := rec.Number(category)
		if !ok {
			continue
		}

		c := m.ColorOf(category)
		p.Rows = append(p.Rows, TooltipRow{
			Category:  category,
			Color:     c,
			Hex:       c.Hex(),
			Value:     v,
			Formatted: format(v),
		})
	}

	return p
}
