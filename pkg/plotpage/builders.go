package plotpage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
)

// Echarts encodes gaps in line data as "-".
const gapValue = "-"

const stepMiddle = "middle"

// BuildAreaChart constructs a fully configured go-echarts Line chart drawing
// the view's series as filled areas. If cOpts is nil, DefaultChartOpts() is
// used. A nil or no-data view has nothing to draw and yields nil.
func BuildAreaChart(cOpts *ChartOpts, view *chart.AreaView) *charts.Line {
	if view == nil || view.NoData {
		return nil
	}

	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(defaultChartWidth, view.Height)),
		charts.WithGridOpts(cOpts.Grid(view)),
		charts.WithXAxisOpts(cOpts.XAxis(view.XAxis)),
		charts.WithYAxisOpts(cOpts.YAxis(view.YAxis, view.Grid)),
		charts.WithLegendOpts(cOpts.Legend(view.Legend)),
		charts.WithTooltipOpts(cOpts.Tooltip(view.Tooltip)),
	)

	line.SetXAxis(view.XAxis.Labels)

	gradients := make(map[string]chart.Gradient, len(view.Gradients))
	for _, g := range view.Gradients {
		gradients[g.ID] = g
	}

	for _, s := range view.Series {
		line.AddSeries(s.Name, lineData(s.Values), areaSeriesOpts(s, gradients[s.GradientID])...)
	}

	if script := overlayScript(view); script != "" {
		line.AddJSFuncStrs(types.FuncStr(script))
	}

	return line
}

func lineData(values []*float64) []opts.LineData {
	data := make([]opts.LineData, len(values))

	for i, v := range values {
		if v == nil {
			data[i] = opts.LineData{Value: gapValue}

			continue
		}

		data[i] = opts.LineData{Value: *v}
	}

	return data
}

func areaSeriesOpts(s chart.AreaSeries, g chart.Gradient) []charts.SeriesOpts {
	lc := opts.LineChart{
		Stack:        s.StackID,
		Smooth:       opts.Bool(s.Curve.Smooth()),
		ShowSymbol:   opts.Bool(s.Dot),
		ConnectNulls: opts.Bool(s.ConnectNulls),
	}

	if s.Curve == chart.CurveStep {
		lc.Step = stepMiddle
	}

	return []charts.SeriesOpts{
		charts.WithLineChartOpts(lc),
		charts.WithLineStyleOpts(opts.LineStyle{Color: s.Stroke, Width: float32(s.StrokeWidth)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Stroke}),
		charts.WithAreaStyleOpts(areaFill(g)),
		charts.WithSeriesAnimation(s.Animated),
	}
}

// areaFill maps a gradient definition to an echarts area style. A flat
// gradient is a solid color at the stop opacity; otherwise the fill is a
// vertical linear gradient evaluated in the browser.
func areaFill(g chart.Gradient) opts.AreaStyle {
	if len(g.Stops) == 0 {
		return opts.AreaStyle{}
	}

	if g.Flat() {
		return opts.AreaStyle{Color: g.Hex, Opacity: opts.Float(float32(g.Stops[0].Opacity))}
	}

	stops := make([]string, len(g.Stops))
	for i, stop := range g.Stops {
		stops[i] = fmt.Sprintf("{offset: %s, color: '%s'}",
			strconv.FormatFloat(stop.Offset, 'f', -1, 64), g.Color.RGBA(stop.Opacity))
	}

	return opts.AreaStyle{
		Color:   opts.FuncStripCommentsOpts("new echarts.graphic.LinearGradient(0, 0, 0, 1, [" + strings.Join(stops, ", ") + "])"),
		Opacity: opts.Float(1),
	}
}

// overlayScript installs the formatters that carry data: the tooltip entries,
// the value axis labels and renamed legend entries. They are applied with a
// second setOption so the data is emitted as JSON rather than inside option
// strings.
func overlayScript(view *chart.AreaView) string {
	var parts []string

	if view.Tooltip != nil {
		parts = append(parts, fmt.Sprintf(
			"tooltip: {transitionDuration: 0, padding: 0, borderWidth: 0, extraCssText: 'box-shadow: none;', "+
				"axisPointer: {lineStyle: {color: %s, width: %d, type: 'solid'}}, "+
				"formatter: (function (entries) { return function (params) { "+
				"var i = params && params.length ? params[0].dataIndex : -1; return entries[i] || ''; }; })(%s)}",
			jsValue(view.Tooltip.CursorColor), view.Tooltip.CursorWidth, jsValue(view.Tooltip.Entries)))
	}

	if !view.YAxis.Hidden && len(view.YAxis.Labels) > 0 {
		labels := make(map[string]string, len(view.YAxis.Labels))
		for value, label := range view.YAxis.Labels {
			labels[strconv.FormatFloat(value, 'f', -1, 64)] = label
		}

		parts = append(parts, fmt.Sprintf(
			"yAxis: {axisLabel: {formatter: (function (labels) { return function (value) { "+
				"var key = String(value); return Object.prototype.hasOwnProperty.call(labels, key) ? labels[key] : key; }; })(%s)}}",
			jsValue(labels)))
	}

	if names := renamedLegend(view.Legend); len(names) > 0 {
		parts = append(parts, fmt.Sprintf(
			"legend: {formatter: (function (names) { return function (name) { return names[name] || name; }; })(%s)}",
			jsValue(names)))
	}

	if len(parts) == 0 {
		return ""
	}

	return "%MY_ECHARTS%.setOption({" + strings.Join(parts, ", ") + "});"
}

func renamedLegend(view *chart.LegendView) map[string]string {
	if view == nil {
		return nil
	}

	names := make(map[string]string)

	for _, item := range view.Content.Items {
		if item.Name != item.Key {
			names[item.Key] = item.Name
		}
	}

	return names
}

// jsValue encodes v as a script literal. Markup characters are escaped so the
// literal is safe inside a script element.
func jsValue(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "null"
	}

	return string(raw)
}
