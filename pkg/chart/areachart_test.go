package chart_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
	"github.com/Sumatoshi-tech/chartkit/pkg/palette"
)

func salesData(n int) []chart.Record {
	data := make([]chart.Record, n)
	for i := range data {
		data[i] = chart.Record{
			"date":   fmt.Sprintf("Day %d", i+1),
			"Sales":  float64(100 + i*10),
			"Profit": float64(20 + i),
		}
	}

	return data
}

func areaProps(data []chart.Record) chart.AreaChartProps {
	props := chart.DefaultAreaChartProps()
	props.Data = data
	props.Index = "date"
	props.Categories = []string{"Sales", "Profit"}

	return props
}

func TestComposeArea_EmptyDataRendersPlaceholder(t *testing.T) {
	t.Parallel()

	props := areaProps(nil)
	props.NoDataText = "Nothing yet"

	view := chart.ComposeArea(props)

	require.True(t, view.NoData)
	assert.Equal(t, "Nothing yet", view.NoDataText)
	assert.Nil(t, view.Grid)
	assert.Nil(t, view.Tooltip)
	assert.Nil(t, view.Legend)
	assert.Empty(t, view.Series)
	assert.Empty(t, view.Gradients)
	assert.Empty(t, view.XAxis.Labels)
}

func TestComposeArea_DefaultNoDataText(t *testing.T) {
	t.Parallel()

	view := chart.ComposeArea(chart.AreaChartProps{})

	require.True(t, view.NoData)
	assert.Equal(t, chart.DefaultNoDataText, view.NoDataText)
}

func TestComposeArea_StartEndOnlyTicks(t *testing.T) {
	t.Parallel()

	data := salesData(10)
	props := areaProps(data)
	props.StartEndOnly = true

	view := chart.ComposeArea(props)

	require.False(t, view.NoData)
	assert.Equal(t, []string{"Day 1", "Day 10"}, view.XAxis.Ticks)
	assert.Equal(t, []int{0, 9}, view.XAxis.TickIndexes)
	assert.Len(t, view.XAxis.Labels, 10)
}

func TestComposeArea_NoTicksByDefault(t *testing.T) {
	t.Parallel()

	view := chart.ComposeArea(areaProps(salesData(4)))

	assert.Nil(t, view.XAxis.Ticks)
	assert.Equal(t, "preserveStartEnd", view.XAxis.Interval)
	assert.Equal(t, "date", view.XAxis.DataKey)
}

func TestComposeArea_SeriesAndColors(t *testing.T) {
	t.Parallel()

	props := areaProps(salesData(3))
	props.Colors = []palette.Color{palette.Emerald, palette.Rose}
	props.Stack = true
	props.ConnectNulls = true
	props.CurveType = chart.CurveMonotone

	view := chart.ComposeArea(props)

	require.Len(t, view.Series, 2)

	sales := view.Series[0]
	assert.Equal(t, "Sales", sales.Name)
	assert.Equal(t, palette.Emerald, sales.Color)
	assert.Equal(t, "#10b981", sales.Stroke)
	assert.Equal(t, "url(#ck-gradient-emerald)", sales.Fill)
	assert.Equal(t, "a", sales.StackID)
	assert.True(t, sales.ConnectNulls)
	assert.True(t, sales.Animated)
	assert.False(t, sales.Dot)
	assert.Equal(t, 2, sales.StrokeWidth)
	assert.Equal(t, chart.CurveMonotone, sales.Curve)
	require.Len(t, sales.Values, 3)
	assert.InDelta(t, 120, *sales.Values[2], 0)

	assert.Equal(t, palette.Rose, view.Series[1].Color)
}

func TestComposeArea_UnstackedHasNoStackID(t *testing.T) {
	t.Parallel()

	view := chart.ComposeArea(areaProps(salesData(2)))

	for _, s := range view.Series {
		assert.Empty(t, s.StackID)
	}
}

func TestComposeArea_Gradients(t *testing.T) {
	t.Parallel()

	props := areaProps(salesData(2))

	view := chart.ComposeArea(props)
	require.Len(t, view.Gradients, 2)

	g := view.Gradients[0]
	assert.False(t, g.Flat())
	require.Len(t, g.Stops, 2)
	assert.InDelta(t, 0.05, g.Stops[0].Offset, 1e-9)
	assert.InDelta(t, 0.4, g.Stops[0].Opacity, 1e-9)
	assert.InDelta(t, 0.95, g.Stops[1].Offset, 1e-9)
	assert.InDelta(t, 0, g.Stops[1].Opacity, 1e-9)

	props.ShowGradient = false
	view = chart.ComposeArea(props)

	g = view.Gradients[0]
	require.True(t, g.Flat())
	assert.InDelta(t, 0.3, g.Stops[0].Opacity, 1e-9)
}

func TestComposeArea_HiddenElements(t *testing.T) {
	t.Parallel()

	props := areaProps(salesData(2))
	props.ShowGridLines = false
	props.ShowTooltip = false
	props.ShowLegend = false
	props.ShowXAxis = false
	props.ShowYAxis = false
	props.ShowAnimation = false

	view := chart.ComposeArea(props)

	assert.Nil(t, view.Grid)
	assert.Nil(t, view.Tooltip)
	assert.Nil(t, view.Legend)
	assert.True(t, view.XAxis.Hidden)
	assert.True(t, view.YAxis.Hidden)
	assert.False(t, view.Series[0].Animated)
}

func TestComposeArea_GridAndTooltip(t *testing.T) {
	t.Parallel()

	view := chart.ComposeArea(areaProps(salesData(3)))

	require.NotNil(t, view.Grid)
	assert.Equal(t, "3 3", view.Grid.DashArray)
	assert.True(t, view.Grid.Horizontal)
	assert.False(t, view.Grid.Vertical)

	require.NotNil(t, view.Tooltip)
	assert.False(t, view.Tooltip.AnimationActive)
	assert.Zero(t, view.Tooltip.PositionY)
	require.Len(t, view.Tooltip.Entries, 3)
	assert.Contains(t, view.Tooltip.Entries[0], "Day 1")
	assert.Contains(t, view.Tooltip.Entries[0], "Sales")
	assert.NotContains(t, view.Tooltip.Entries[0], "'")
}

func TestComposeArea_YAxisDomainAndLabels(t *testing.T) {
	t.Parallel()

	props := areaProps(salesData(3))
	props.MinValue = ptr(0)
	props.MaxValue = ptr(100)
	props.ValueFormatter = func(v float64) string { return fmt.Sprintf("$%.0f", v) }

	view := chart.ComposeArea(props)

	require.True(t, view.YAxis.HasDomain)
	assert.Equal(t, chart.Domain{Min: 0, Max: 100}, view.YAxis.Domain)
	assert.Equal(t, []string{"$0", "$20", "$40", "$60", "$80", "$100"}, view.YAxis.TickLabels)
	assert.Equal(t, chart.DefaultYAxisWidth, view.YAxis.Width)
}

func TestComposeArea_YAxisLabelsIncludeDomainBounds(t *testing.T) {
	t.Parallel()

	props := areaProps(salesData(3))
	props.ValueFormatter = func(v float64) string { return fmt.Sprintf("$%.0f", v) }

	axis := chart.ComposeArea(props).YAxis

	assert.Equal(t, []float64{0, 50, 100}, axis.Ticks)
	assert.Equal(t, map[float64]string{0: "$0", 50: "$50", 100: "$100", 120: "$120"}, axis.Labels)
}

func TestComposeArea_AutoDomainLabelsRendererTicks(t *testing.T) {
	t.Parallel()

	props := areaProps(salesData(3))
	props.MinValue = ptr(200)
	props.MaxValue = ptr(10)

	axis := chart.ComposeArea(props).YAxis

	require.True(t, axis.Domain.Auto)
	assert.Empty(t, axis.Ticks)
	assert.Equal(t, "120", axis.Labels[120])
	assert.Equal(t, "0", axis.Labels[0])
}

func TestComposeArea_StackedDomainUsesSums(t *testing.T) {
	t.Parallel()

	props := areaProps(salesData(3))
	props.Stack = true

	view := chart.ComposeArea(props)

	require.True(t, view.YAxis.HasDomain)
	assert.InDelta(t, 142, view.YAxis.Domain.Max, 0)
}

func TestComposeArea_NoNumericValuesLeavesDomainUndefined(t *testing.T) {
	t.Parallel()

	props := areaProps([]chart.Record{{"date": "a"}, {"date": "b"}})

	view := chart.ComposeArea(props)

	require.False(t, view.NoData)
	assert.False(t, view.YAxis.HasDomain)
	assert.Empty(t, view.YAxis.Ticks)
}

func TestComposeArea_LegendHeightFollowsContent(t *testing.T) {
	t.Parallel()

	props := areaProps(salesData(2))
	props.Categories = []string{
		"Northern region", "Southern region", "Eastern region", "Western region", "Central region",
	}
	props.Width = 240
	props.LegendLayout = chart.NewLegendLayout()

	view := chart.ComposeArea(props)

	require.NotNil(t, view.Legend)
	assert.Equal(t, "top", view.Legend.VerticalAlign)
	assert.Greater(t, view.Legend.Content.Rows, 1)
	assert.Equal(t, props.LegendLayout.Height(), view.Legend.Height)
	assert.Greater(t, view.Legend.Height, chart.DefaultLegendHeight)

	props.Width = 0
	narrow := chart.ComposeArea(props)
	assert.Equal(t, 1, narrow.Legend.Content.Rows)
	assert.Less(t, narrow.Legend.Height, view.Legend.Height)
}

type upperLegend struct{}

func (upperLegend) RenderLegend(items []chart.LegendItem, _ int) chart.LegendContent {
	out := make([]chart.LegendItem, len(items))
	for i, item := range items {
		item.Name = strings.ToUpper(item.Name)
		out[i] = item
	}

	return chart.LegendContent{Items: out, Rows: 1}
}

type plainTooltip struct{}

func (plainTooltip) RenderTooltip(p chart.TooltipPayload) string {
	parts := []string{p.Label}
	for _, row := range p.Rows {
		parts = append(parts, row.Category+"="+row.Formatted)
	}

	return strings.Join(parts, ";")
}

func TestComposeArea_CustomRenderers(t *testing.T) {
	t.Parallel()

	props := areaProps(salesData(1))
	props.Legend = upperLegend{}
	props.Tooltip = plainTooltip{}

	view := chart.ComposeArea(props)

	assert.Equal(t, "SALES", view.Legend.Content.Items[0].Name)
	assert.Equal(t, "Day 1;Sales=100;Profit=20", view.Tooltip.Entries[0])
}

func TestComposeArea_DuplicateCategoriesPlotOnce(t *testing.T) {
	t.Parallel()

	props := areaProps(salesData(2))
	props.Categories = []string{"Sales", "Sales", "Profit"}

	view := chart.ComposeArea(props)

	require.Len(t, view.Series, 2)
	assert.Equal(t, "Profit", view.Series[1].Name)
}

func TestAreaChartProps_Validate(t *testing.T) {
	t.Parallel()

	props := areaProps(salesData(2))
	require.NoError(t, props.Validate())

	props.Index = ""
	require.ErrorIs(t, props.Validate(), chart.ErrEmptyIndex)

	props.Index = "missing"
	require.ErrorIs(t, props.Validate(), chart.ErrMissingIndex)

	props.Index = "date"
	props.MinValue = ptr(10)
	props.MaxValue = ptr(1)
	require.ErrorIs(t, props.Validate(), chart.ErrInvalidBounds)

	require.NoError(t, chart.AreaChartProps{}.Validate())
}
