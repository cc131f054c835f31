// Package plotpage renders charts and layout components into standalone HTML pages.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/render"
)

// DefaultAssetsHost serves the echarts runtime referenced by rendered pages.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

const echartsScript = "echarts.min.js"

// Hint contains interpretive guidance for a section.
type Hint struct {
	Title string
	Items []string
}

// Section represents a titled block within a page.
type Section struct {
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
}

// Page represents a complete page.
type Page struct {
	Title       string
	Description string
	ProjectName string
	Theme       Theme
	AssetsHost  string
	// Nav, when set, is rendered above the sections.
	Nav      Renderable
	Sections []Section
}

// NewPage creates a new page with the light theme.
func NewPage(title, description string) *Page {
	return &Page{
		Title:       title,
		Description: description,
		ProjectName: "chartkit",
		Theme:       ThemeLight,
		AssetsHost:  DefaultAssetsHost,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return HTMLRenderer{}.Render(w, p)
}

// Renderable is the interface for page components.
type Renderable interface {
	Render(w io.Writer) error
}

// HTMLRenderer renders pages as HTML.
type HTMLRenderer struct{}

// Render writes the page as HTML to the writer.
func (r HTMLRenderer) Render(w io.Writer, page *Page) error {
	themeConfig := GetThemeConfig(page.Theme)

	header, err := renderTemplate("header.html", headerData{
		ProjectName: page.ProjectName,
		Title:       page.Title,
		Description: page.Description,
	})
	if err != nil {
		return fmt.Errorf("render header: %w", err)
	}

	var nav template.HTML

	if page.Nav != nil {
		nav, err = renderComponent(page.Nav)
		if err != nil {
			return fmt.Errorf("render nav: %w", err)
		}
	}

	var sectionsHTML bytes.Buffer

	for _, section := range page.Sections {
		sectionHTML, sectionErr := r.renderSection(section)
		if sectionErr != nil {
			return fmt.Errorf("render section %q: %w", section.Title, sectionErr)
		}

		sectionsHTML.WriteString(string(sectionHTML))
	}

	darkClass := ""
	if page.Theme == ThemeDark {
		darkClass = "dark"
	}

	assetsHost := page.AssetsHost
	if assetsHost == "" {
		assetsHost = DefaultAssetsHost
	}

	data := pageData{
		Title:     page.Title,
		DarkClass: darkClass,
		ThemeCSS:  themeConfig.CSS(),
		EChartsJS: template.URL(strings.TrimSuffix(assetsHost, "/") + "/" + echartsScript),
		Header:    header,
		Nav:       nav,
		Content:   template.HTML(sectionsHTML.String()),
	}

	html, err := renderTemplate("page.html", data)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = w.Write([]byte(html))
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func (r HTMLRenderer) renderSection(section Section) (template.HTML, error) {
	var content template.HTML

	if section.Chart != nil {
		var err error

		content, err = renderComponent(section.Chart)
		if err != nil {
			return "", err
		}
	}

	var hint *hintData

	if len(section.Hint.Items) > 0 {
		hint = &hintData{
			Title: section.Hint.Title,
			Items: section.Hint.Items,
		}
	}

	return renderTemplate("section.html", sectionData{
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Content:  content,
		Hint:     hint,
	})
}

// SnippetRenderer is implemented by go-echarts charts.
type SnippetRenderer interface {
	RenderSnippet() render.ChartSnippet
}

// ChartWrapper wraps an echarts chart and renders only the chart element and
// its script, without the surrounding page.
type ChartWrapper struct {
	chart SnippetRenderer
}

// WrapChart wraps an echarts chart for embedding in a page.
func WrapChart(chart SnippetRenderer) *ChartWrapper {
	return &ChartWrapper{chart: chart}
}

// Render writes the chart element and script.
func (cw *ChartWrapper) Render(w io.Writer) error {
	if cw.chart == nil {
		return nil
	}

	snippet := cw.chart.RenderSnippet()
	element := strings.Replace(snippet.Element, `class="container"`, `class="echart-box"`, 1)

	_, err := io.WriteString(w, element+snippet.Script)
	if err != nil {
		return fmt.Errorf("writing chart content: %w", err)
	}

	return nil
}

// renderComponent renders a component into template-safe HTML.
func renderComponent(c Renderable) (template.HTML, error) {
	if c == nil {
		return "", nil
	}

	var buf bytes.Buffer

	err := c.Render(&buf)
	if err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil
}
