package plotpage

import (
	"fmt"
	"html/template"
	"io"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
)

// writeHTML writes rendered markup, naming the component on failure.
func writeHTML(w io.Writer, html template.HTML, component string) error {
	_, err := w.Write([]byte(html))
	if err != nil {
		return fmt.Errorf("writing %s: %w", component, err)
	}

	return nil
}

// renderAll renders each item in order, skipping nil items.
func renderAll(items []Renderable, component string) ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(items))

	for i, item := range items {
		if item == nil {
			continue
		}

		html, err := renderComponent(item)
		if err != nil {
			return nil, fmt.Errorf("rendering %s item %d: %w", component, i, err)
		}

		out = append(out, html)
	}

	return out, nil
}

// Card renders a card container.
type Card struct {
	Title     string
	Subtitle  string
	ClassName string
	Content   Renderable
}

// NewCard creates a new card.
func NewCard(title, subtitle string) *Card {
	return &Card{Title: title, Subtitle: subtitle}
}

// WithContent sets the card content.
func (c *Card) WithContent(content Renderable) *Card {
	c.Content = content

	return c
}

// Render writes the card HTML.
func (c *Card) Render(w io.Writer) error {
	content, err := renderComponent(c.Content)
	if err != nil {
		return fmt.Errorf("rendering card content: %w", err)
	}

	return writeHTML(w, mustRenderTemplate("card.html", cardData{
		Title:     c.Title,
		Subtitle:  c.Subtitle,
		ClassName: c.ClassName,
		Content:   content,
	}), "card")
}

// Title renders a heading.
type Title struct {
	Text      string
	ClassName string
}

// NewTitle creates a new heading.
func NewTitle(text string) *Title {
	return &Title{Text: text}
}

// Render writes the heading HTML.
func (t *Title) Render(w io.Writer) error {
	return writeHTML(w, mustRenderTemplate("title.html", textData{Text: t.Text, ClassName: t.ClassName}), "title")
}

// Text renders a paragraph of muted body text.
type Text struct {
	Content   string
	ClassName string
}

// NewText creates a new text block.
func NewText(content string) *Text {
	return &Text{Content: content}
}

// Render writes the text content.
func (t *Text) Render(w io.Writer) error {
	return writeHTML(w, mustRenderTemplate("text.html", textData{Text: t.Content, ClassName: t.ClassName}), "text")
}

// Div groups components in a plain block element.
type Div struct {
	ClassName string
	Items     []Renderable
}

// NewDiv creates a block wrapping items.
func NewDiv(className string, items ...Renderable) *Div {
	return &Div{ClassName: className, Items: items}
}

// Render writes the block HTML.
func (d *Div) Render(w io.Writer) error {
	items, err := renderAll(d.Items, "div")
	if err != nil {
		return err
	}

	return writeHTML(w, mustRenderTemplate("div.html", boxData{Classes: d.ClassName, Items: items}), "div")
}

// JustifyContent is the main axis alignment of a Flex row.
type JustifyContent string

// Justify values.
const (
	JustifyStart   JustifyContent = "start"
	JustifyEnd     JustifyContent = "end"
	JustifyCenter  JustifyContent = "center"
	JustifyBetween JustifyContent = "between"
)

var justifyClasses = map[JustifyContent]string{
	JustifyStart:   "justify-start",
	JustifyEnd:     "justify-end",
	JustifyCenter:  "justify-center",
	JustifyBetween: "justify-between",
}

// Flex lays items out in a full-width row.
type Flex struct {
	Justify   JustifyContent
	ClassName string
	Items     []Renderable
}

// NewFlex creates a row with the given alignment.
func NewFlex(justify JustifyContent, items ...Renderable) *Flex {
	return &Flex{Justify: justify, Items: items}
}

// Render writes the row HTML.
func (f *Flex) Render(w io.Writer) error {
	items, err := renderAll(f.Items, "flex")
	if err != nil {
		return err
	}

	justify, ok := justifyClasses[f.Justify]
	if !ok {
		justify = justifyClasses[JustifyBetween]
	}

	return writeHTML(w, mustRenderTemplate("flex.html", boxData{
		Classes: "flex w-full flex-row items-center " + justify + " " + f.ClassName,
		Items:   items,
	}), "flex")
}

// accordionPosition is where an accordion sits inside an AccordionList.
type accordionPosition int

const (
	positionAlone accordionPosition = iota
	positionFirst
	positionMiddle
	positionLast
)

var positionClasses = map[accordionPosition]string{
	positionAlone:  "rounded-lg",
	positionFirst:  "rounded-t-lg rounded-b-none",
	positionMiddle: "rounded-none border-t-0",
	positionLast:   "rounded-b-lg rounded-t-none border-t-0",
}

// AccordionHeader is the always visible, clickable part of an Accordion.
type AccordionHeader struct {
	Content   Renderable
	ClassName string
}

// NewAccordionHeader creates a header.
func NewAccordionHeader(content Renderable) *AccordionHeader {
	return &AccordionHeader{Content: content}
}

// Render writes the header content.
func (h *AccordionHeader) Render(w io.Writer) error {
	content, err := renderComponent(h.Content)
	if err != nil {
		return fmt.Errorf("rendering accordion header: %w", err)
	}

	return writeHTML(w, mustRenderTemplate("accordion_header.html", boxData{
		Classes: h.ClassName,
		Items:   []template.HTML{content},
	}), "accordion header")
}

// AccordionBody is the collapsible part of an Accordion.
type AccordionBody struct {
	Content   Renderable
	ClassName string
}

// NewAccordionBody creates a body.
func NewAccordionBody(content Renderable) *AccordionBody {
	return &AccordionBody{Content: content}
}

// Render writes the body content.
func (b *AccordionBody) Render(w io.Writer) error {
	content, err := renderComponent(b.Content)
	if err != nil {
		return fmt.Errorf("rendering accordion body: %w", err)
	}

	return writeHTML(w, mustRenderTemplate("accordion_body.html", boxData{
		Classes: b.ClassName,
		Items:   []template.HTML{content},
	}), "accordion body")
}

// Accordion shows a header and toggles its body open and closed. It needs no
// script: the open state lives in the details element.
type Accordion struct {
	Header    *AccordionHeader
	Body      *AccordionBody
	Expanded  bool
	Shadow    bool
	ClassName string

	position accordionPosition
}

// NewAccordion creates a collapsed accordion.
func NewAccordion(header *AccordionHeader, body *AccordionBody) *Accordion {
	return &Accordion{Header: header, Body: body}
}

// WithExpanded sets the initial open state.
func (a *Accordion) WithExpanded(expanded bool) *Accordion {
	a.Expanded = expanded

	return a
}

// WithShadow toggles the drop shadow.
func (a *Accordion) WithShadow(shadow bool) *Accordion {
	a.Shadow = shadow

	return a
}

// Render writes the accordion HTML.
func (a *Accordion) Render(w io.Writer) error {
	var header, body template.HTML

	var err error

	if a.Header != nil {
		header, err = renderComponent(a.Header)
		if err != nil {
			return err
		}
	}

	if a.Body != nil {
		body, err = renderComponent(a.Body)
		if err != nil {
			return err
		}
	}

	classes := positionClasses[a.position]
	if a.Shadow {
		classes += " shadow"
	}

	return writeHTML(w, mustRenderTemplate("accordion.html", accordionData{
		Classes:  classes + " " + a.ClassName,
		Expanded: a.Expanded,
		Header:   header,
		Body:     body,
	}), "accordion")
}

// AccordionList stacks accordions into one bordered group; only the outer
// corners of the group are rounded.
type AccordionList struct {
	Items     []*Accordion
	Shadow    bool
	ClassName string
}

// NewAccordionList creates a group.
func NewAccordionList(items ...*Accordion) *AccordionList {
	return &AccordionList{Items: items}
}

// Render writes the group HTML. Items are rendered from copies so the list
// never changes the accordions it was given.
func (l *AccordionList) Render(w io.Writer) error {
	items := make([]template.HTML, 0, len(l.Items))

	for i, item := range l.Items {
		if item == nil {
			continue
		}

		positioned := *item
		positioned.Shadow = false
		positioned.position = listPosition(i, len(l.Items))

		html, err := renderComponent(&positioned)
		if err != nil {
			return fmt.Errorf("rendering accordion %d: %w", i, err)
		}

		items = append(items, html)
	}

	classes := "rounded-lg " + l.ClassName
	if l.Shadow {
		classes = "shadow " + classes
	}

	return writeHTML(w, mustRenderTemplate("div.html", boxData{Classes: classes, Items: items}), "accordion list")
}

func listPosition(i, n int) accordionPosition {
	switch {
	case n == 1:
		return positionAlone
	case i == 0:
		return positionFirst
	case i == n-1:
		return positionLast
	default:
		return positionMiddle
	}
}

// NoData is the placeholder shown instead of a chart without data.
type NoData struct {
	Text      string
	Height    string
	ClassName string
}

// NewNoData creates a placeholder; empty text uses the default message.
func NewNoData(text string) *NoData {
	if text == "" {
		text = chart.DefaultNoDataText
	}

	return &NoData{Text: text, Height: chart.DefaultChartHeight}
}

// Render writes the placeholder HTML.
func (n *NoData) Render(w io.Writer) error {
	return writeHTML(w, mustRenderTemplate("nodata.html", noDataData{
		Text:      n.Text,
		Height:    n.Height,
		ClassName: n.ClassName,
	}), "no data placeholder")
}

// AreaChart renders chart props as an area chart, or the NoData placeholder
// when there is nothing to plot.
type AreaChart struct {
	ID    string
	Props chart.AreaChartProps
	Theme Theme
}

// NewAreaChart creates an area chart component. The id pins the chart element
// id so repeated renders produce the same markup.
func NewAreaChart(id string, props chart.AreaChartProps) *AreaChart {
	return &AreaChart{ID: id, Props: props, Theme: ThemeLight}
}

// WithTheme sets the chart theme.
func (a *AreaChart) WithTheme(theme Theme) *AreaChart {
	a.Theme = theme

	return a
}

// View composes the view from the current props. Every call recomposes, so
// edits to Props show up in the next render.
func (a *AreaChart) View() *chart.AreaView {
	return chart.ComposeArea(a.Props)
}

// Render writes the chart HTML.
func (a *AreaChart) Render(w io.Writer) error {
	view := a.View()

	if view.NoData {
		placeholder := &NoData{Text: view.NoDataText, Height: view.Height, ClassName: view.ClassName}

		return placeholder.Render(w)
	}

	line := BuildAreaChart(NewChartOpts(a.Theme).WithID(a.ID), view)

	content, err := renderComponent(WrapChart(line))
	if err != nil {
		return fmt.Errorf("rendering area chart: %w", err)
	}

	return writeHTML(w, mustRenderTemplate("chart.html", chartData{
		ClassName: view.ClassName,
		Chart:     content,
	}), "area chart")
}

// NavLink is one entry of a navigation bar.
type NavLink struct {
	Href   string
	Label  string
	Active bool
}

// Nav renders a horizontal navigation bar.
type Nav struct {
	Links []NavLink
}

// Render writes the navigation HTML.
func (n *Nav) Render(w io.Writer) error {
	return writeHTML(w, mustRenderTemplate("nav.html", navData{Links: n.Links}), "nav")
}
