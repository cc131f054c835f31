package plotpage_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
	"github.com/Sumatoshi-tech/chartkit/pkg/plotpage"
)

func render(t *testing.T, r plotpage.Renderable) string {
	t.Helper()

	var buf bytes.Buffer

	require.NoError(t, r.Render(&buf))

	return buf.String()
}

func simpleAccordion() *plotpage.Accordion {
	return plotpage.NewAccordion(
		plotpage.NewAccordionHeader(plotpage.NewText("Accordion 1")),
		plotpage.NewAccordionBody(plotpage.NewText("Lorem ipsum dolor sit amet")),
	)
}

func TestAccordion_CollapsedByDefault(t *testing.T) {
	t.Parallel()

	html := render(t, simpleAccordion())

	assert.Contains(t, html, "<details")
	assert.Contains(t, html, "<summary")
	assert.Contains(t, html, "Accordion 1")
	assert.Contains(t, html, "Lorem ipsum dolor sit amet")
	assert.Contains(t, html, "rounded-lg")
	assert.NotContains(t, html, " open>")
	assert.NotContains(t, html, " shadow")
}

func TestAccordion_ExpandedAndShadow(t *testing.T) {
	t.Parallel()

	html := render(t, simpleAccordion().WithExpanded(true).WithShadow(true))

	assert.Contains(t, html, " open>")
	assert.Contains(t, html, " shadow")
}

func TestAccordionList_RoundsOuterCorners(t *testing.T) {
	t.Parallel()

	first, middle, last := simpleAccordion(), simpleAccordion(), simpleAccordion().WithShadow(true)
	list := plotpage.NewAccordionList(first, middle, last)

	html := render(t, list)

	assert.Equal(t, 3, strings.Count(html, "<details"))
	assert.Contains(t, html, "rounded-t-lg rounded-b-none")
	assert.Contains(t, html, "rounded-none border-t-0")
	assert.Contains(t, html, "rounded-b-lg rounded-t-none border-t-0")

	// Items keep their own settings outside the list.
	assert.True(t, last.Shadow)
	assert.Contains(t, render(t, first), `class="ck-accordion`)
	assert.NotContains(t, render(t, first), "rounded-t-lg")
}

func TestAccordionList_SingleItem(t *testing.T) {
	t.Parallel()

	html := render(t, plotpage.NewAccordionList(simpleAccordion()))

	assert.Equal(t, 1, strings.Count(html, "<details"))
	assert.NotContains(t, html, "rounded-t-lg")
}

func TestFlex_Justify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		justify plotpage.JustifyContent
		class   string
	}{
		{plotpage.JustifyStart, "justify-start"},
		{plotpage.JustifyEnd, "justify-end"},
		{plotpage.JustifyCenter, "justify-center"},
		{plotpage.JustifyBetween, "justify-between"},
		{"", "justify-between"},
	}

	for _, tt := range tests {
		html := render(t, plotpage.NewFlex(tt.justify, plotpage.NewText("x")))
		assert.Contains(t, html, tt.class, tt.justify)
	}
}

func TestCardTitleText_EscapeContent(t *testing.T) {
	t.Parallel()

	card := plotpage.NewCard("Revenue", "<b>Q1</b>").WithContent(plotpage.NewText("a < b"))
	card.ClassName = "max-w-sm"

	html := render(t, card)

	assert.Contains(t, html, "Revenue")
	assert.Contains(t, html, "&lt;b&gt;Q1&lt;/b&gt;")
	assert.Contains(t, html, "a &lt; b")
	assert.Contains(t, html, "max-w-sm")

	title := plotpage.NewTitle("Desktop")
	title.ClassName = "mt-5"
	assert.Contains(t, render(t, title), `class="text-lg font-medium text-gray-900 dark:text-gray-50 mt-5"`)
}

func TestDiv_WithoutClass(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<div><p", render(t, plotpage.NewDiv("", plotpage.NewText("x")))[:len("<div><p")])
	assert.Contains(t, render(t, plotpage.NewDiv("w-64")), `<div class="w-64">`)
}

func TestNoData(t *testing.T) {
	t.Parallel()

	html := render(t, plotpage.NewNoData(""))

	assert.Contains(t, html, chart.DefaultNoDataText)
	assert.Contains(t, html, "height: 320px")
}

func TestAreaChart_EmptyDataRendersPlaceholder(t *testing.T) {
	t.Parallel()

	props := salesProps(0)
	props.NoDataText = "Nothing to show"

	component := plotpage.NewAreaChart("empty", props)
	html := render(t, component)

	assert.True(t, component.View().NoData)
	assert.Contains(t, html, "Nothing to show")
	assert.NotContains(t, html, "echart-box")
	assert.NotContains(t, html, "<script")
}

func TestAreaChart_RendersChart(t *testing.T) {
	t.Parallel()

	props := salesProps(5)
	props.ClassName = "h-72 mt-4"

	html := render(t, plotpage.NewAreaChart("sales", props).WithTheme(plotpage.ThemeDark))

	assert.Contains(t, html, "h-72 mt-4")
	assert.Contains(t, html, `id="ck_sales"`)
	assert.Contains(t, html, "<script")
	assert.Equal(t, html, render(t, plotpage.NewAreaChart("sales", props).WithTheme(plotpage.ThemeDark)))
}

func TestAreaChart_RecomposesAfterPropsChange(t *testing.T) {
	t.Parallel()

	component := plotpage.NewAreaChart("live", salesProps(0))

	first := render(t, component)
	assert.Contains(t, first, chart.DefaultNoDataText)
	assert.NotContains(t, first, "echart-box")

	component.Props.Data = salesProps(2).Data

	second := render(t, component)
	assert.False(t, component.View().NoData)
	assert.Contains(t, second, "echart-box")
	assert.Contains(t, second, `id="ck_live"`)
	assert.NotContains(t, second, chart.DefaultNoDataText)
}

type failing struct{}

var errBoom = errors.New("boom")

func (failing) Render(io.Writer) error {
	return errBoom
}

func TestComponents_PropagateErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.ErrorIs(t, plotpage.NewCard("t", "").WithContent(failing{}).Render(&buf), errBoom)
	require.ErrorIs(t, plotpage.NewFlex(plotpage.JustifyStart, failing{}).Render(&buf), errBoom)
	require.ErrorIs(t, plotpage.NewAccordion(plotpage.NewAccordionHeader(failing{}), nil).Render(&buf), errBoom)
	require.ErrorIs(t, plotpage.NewAccordionList(
		plotpage.NewAccordion(nil, plotpage.NewAccordionBody(failing{})),
	).Render(&buf), errBoom)
}
