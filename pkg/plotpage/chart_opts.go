package plotpage

import (
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
)

// Layout defaults, in pixels.
const (
	gridEdge          = 10
	gridBottomAxis    = 30
	legendItemSize    = 8
	tooltipPinnedJS   = "function (point) { return [point[0], 0]; }"
	chartIDPrefix     = "ck_"
	defaultChartWidth = "100%"
)

// ChartOpts provides themed chart options based on the current theme.
type ChartOpts struct {
	theme   ThemeConfig
	chartID string
}

// NewChartOpts creates a new ChartOpts with the given theme.
func NewChartOpts(theme Theme) *ChartOpts {
	return &ChartOpts{theme: GetThemeConfig(theme)}
}

// DefaultChartOpts returns chart options for the default light theme.
func DefaultChartOpts() *ChartOpts {
	return NewChartOpts(ThemeLight)
}

// WithID returns a copy of the options that pins the chart element id.
// Without an id go-echarts generates a random one.
func (c *ChartOpts) WithID(id string) *ChartOpts {
	out := *c
	out.chartID = ChartID(id)

	return &out
}

// ChartID turns an arbitrary name into an element id that is also a valid
// script identifier.
func ChartID(name string) string {
	if name == "" {
		return ""
	}

	var b strings.Builder

	b.WriteString(chartIDPrefix)

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String()
}

// Init returns initialization options with themed background.
func (c *ChartOpts) Init(width, height string) opts.Initialization {
	return opts.Initialization{
		Width:           width,
		Height:          height,
		BackgroundColor: c.theme.ChartBackground,
		ChartID:         c.chartID,
		Theme:           c.theme.EChartsTheme,
	}
}

// Grid returns the plot area margins. The top edge leaves room for the
// legend and the left edge for the value axis labels.
func (c *ChartOpts) Grid(view *chart.AreaView) opts.Grid {
	top := gridEdge
	if view.Legend != nil {
		top = view.Legend.Height
	}

	left := gridEdge
	if !view.YAxis.Hidden {
		left = view.YAxis.Width
	}

	bottom := gridEdge
	if !view.XAxis.Hidden {
		bottom = gridBottomAxis
	}

	return opts.Grid{
		Top:          px(top),
		Left:         px(left),
		Right:        px(gridEdge),
		Bottom:       px(bottom),
		ContainLabel: opts.Bool(false),
	}
}

// XAxis returns category axis options. Explicit ticks show every label slot
// and let the formatter blank the ones outside the tick set.
func (c *ChartOpts) XAxis(axis chart.XAxis) opts.XAxis {
	label := &opts.AxisLabel{
		Show:         opts.Bool(true),
		Interval:     "auto",
		ShowMinLabel: opts.Bool(true),
		ShowMaxLabel: opts.Bool(true),
		HideOverlap:  opts.Bool(true),
		FontSize:     axis.FontSize,
		Color:        c.theme.ChartTextMuted,
	}

	if len(axis.TickIndexes) > 0 {
		label.Interval = "0"
		label.Formatter = opts.FuncOpts(tickFormatterJS(axis.TickIndexes))
	}

	return opts.XAxis{
		Show:      opts.Bool(!axis.Hidden),
		Type:      "category",
		AxisLabel: label,
		AxisTick:  &opts.AxisTick{Show: opts.Bool(false)},
		AxisLine:  &opts.AxisLine{Show: opts.Bool(false)},
		SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
	}
}

func tickFormatterJS(indexes []int) string {
	conds := make([]string, len(indexes))
	for i, idx := range indexes {
		conds[i] = "index === " + strconv.Itoa(idx)
	}

	return "function (value, index) { return " + strings.Join(conds, " || ") + " ? value : ''; }"
}

// YAxis returns value axis options. A hidden axis keeps its split lines so the
// grid still renders.
func (c *ChartOpts) YAxis(axis chart.YAxis, grid *chart.GridLines) opts.YAxis {
	y := opts.YAxis{
		Show: opts.Bool(true),
		Type: "value",
		AxisLabel: &opts.AxisLabel{
			Show:     opts.Bool(!axis.Hidden),
			FontSize: axis.FontSize,
			Color:    c.theme.ChartTextMuted,
		},
		AxisLine:  &opts.AxisLine{Show: opts.Bool(false)},
		SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
	}

	if grid != nil && grid.Horizontal {
		y.SplitLine = &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: c.GridColor(), Type: "dashed"},
		}
	}

	if !axis.AllowDecimals {
		y.MinInterval = 1
	}

	if axis.HasDomain && !axis.Domain.Auto {
		y.Min = axis.Domain.Min
		y.Max = axis.Domain.Max

		if len(axis.Ticks) > 1 {
			step := axis.Ticks[1] - axis.Ticks[0]
			y.MinInterval = step
			y.MaxInterval = step
		}
	}

	return y
}

// Legend returns legend options listing the categories in legend order.
func (c *ChartOpts) Legend(view *chart.LegendView) opts.Legend {
	if view == nil {
		return opts.Legend{Show: opts.Bool(false)}
	}

	keys := make([]string, len(view.Content.Items))
	for i, item := range view.Content.Items {
		keys[i] = item.Key
	}

	return opts.Legend{
		Show:       opts.Bool(true),
		Type:       "plain",
		Top:        "0",
		Right:      "0",
		Height:     px(view.Height),
		Icon:       "circle",
		ItemWidth:  legendItemSize,
		ItemHeight: legendItemSize,
		Data:       keys,
		TextStyle:  &opts.TextStyle{Color: c.TextColor()},
	}
}

// Tooltip returns axis-triggered tooltip options pinned to the top edge. The
// box itself comes from the pre-rendered entries, so echarts draws none.
func (c *ChartOpts) Tooltip(view *chart.TooltipView) opts.Tooltip {
	if view == nil {
		return opts.Tooltip{Show: opts.Bool(false)}
	}

	return opts.Tooltip{
		Show:            opts.Bool(true),
		Trigger:         "axis",
		Position:        opts.FuncOpts(tooltipPinnedJS),
		BackgroundColor: "transparent",
		BorderColor:     "transparent",
		AxisPointer:     &opts.AxisPointer{Type: "line"},
	}
}

// TextColor returns the primary chart text color.
func (c *ChartOpts) TextColor() string {
	return c.theme.ChartText
}

// GridColor returns the chart grid color.
func (c *ChartOpts) GridColor() string {
	return c.theme.ChartGrid
}

func px(v int) string {
	return strconv.Itoa(v)
}
