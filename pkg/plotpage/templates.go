package plotpage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	templates     *template.Template
	templatesOnce sync.Once
	errTemplates  error
)

// funcMap provides template function helpers.
var funcMap = template.FuncMap{
	"classes": func(parts ...string) string {
		return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	},
}

// getTemplates returns the parsed templates, loading them once.
func getTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		var parseErr error

		templates, parseErr = template.New("").
			Funcs(funcMap).
			ParseFS(templateFS, "templates/*.html")
		if parseErr != nil {
			errTemplates = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})

	return templates, errTemplates
}

// renderTemplate renders a named template with the given data.
func renderTemplate(name string, data any) (template.HTML, error) {
	tmpl, err := getTemplates()
	if err != nil {
		return "", fmt.Errorf("loading templates: %w", err)
	}

	var buf bytes.Buffer

	err = tmpl.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil
}

// mustRenderTemplate renders a template, panicking on error.
// Use only when errors are not expected (e.g., embedded templates).
func mustRenderTemplate(name string, data any) template.HTML {
	html, err := renderTemplate(name, data)
	if err != nil {
		panic("plotpage: template error: " + err.Error())
	}

	return html
}

// pageData holds data for the page template.
type pageData struct {
	Title     string
	DarkClass string
	ThemeCSS  template.CSS
	EChartsJS template.URL
	Header    template.HTML
	Nav       template.HTML
	Content   template.HTML
}

// headerData holds data for the header template.
type headerData struct {
	ProjectName string
	Title       string
	Description string
}

// sectionData holds data for the section template.
type sectionData struct {
	Title    string
	Subtitle string
	Content  template.HTML
	Hint     *hintData
}

// hintData holds data for hints within sections.
type hintData struct {
	Title string
	Items []string
}

// cardData holds data for the card template.
type cardData struct {
	Title     string
	Subtitle  string
	ClassName string
	Content   template.HTML
}

// textData holds data for the title and text templates.
type textData struct {
	Text      string
	ClassName string
}

// boxData holds data for the div and flex templates.
type boxData struct {
	Classes string
	Items   []template.HTML
}

// accordionData holds data for the accordion template.
type accordionData struct {
	Classes  string
	Expanded bool
	Header   template.HTML
	Body     template.HTML
}

// noDataData holds data for the no-data placeholder template.
type noDataData struct {
	Text      string
	Height    string
	ClassName string
}

// chartData holds data for the chart container template.
type chartData struct {
	ClassName string
	Chart     template.HTML
}

// navData holds data for the navigation template.
type navData struct {
	Links []NavLink
}
