package plotpage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// IndexFileName is the file name of the index page.
const IndexFileName = "index.html"

const (
	pageFileMode = 0o600
	dirFileMode  = 0o750
)

// PageMeta carries metadata about a rendered page for the index.
type PageMeta struct {
	ID          string // Filename stem, e.g. "areachart-default".
	Group       string // Index grouping, e.g. "AreaChart".
	Title       string // Display title.
	Description string // Short description for the index card.
}

// Href returns the page file name relative to the index.
func (m PageMeta) Href() string {
	return m.ID + ".html"
}

// Index renders a grid of links to pages.
type Index struct {
	Pages []PageMeta
}

// Render writes the index grid.
func (x *Index) Render(w io.Writer) error {
	return writeHTML(w, mustRenderTemplate("index.html", indexData{Pages: x.Pages}), "index")
}

// indexData holds template data for index.html.
type indexData struct {
	Pages []PageMeta
}

// MultiPageRenderer writes one HTML file per page plus an index page linking
// them, for hosting as static files.
type MultiPageRenderer struct {
	OutputDir  string // Directory to write HTML files into.
	Title      string // Project title shown on every page.
	Theme      Theme
	AssetsHost string
}

// StoryPage builds the page for one entry, with a link back to the index.
func (r *MultiPageRenderer) StoryPage(meta PageMeta, sections []Section) *Page {
	page := r.newPage(meta.Title, meta.Description)
	page.Nav = &Nav{Links: []NavLink{{Href: IndexFileName, Label: "All pages"}}}
	page.Sections = sections

	return page
}

// IndexPage builds the index page linking pages.
func (r *MultiPageRenderer) IndexPage(title, description string, pages []PageMeta) *Page {
	page := r.newPage(title, description)
	page.Sections = []Section{{Chart: &Index{Pages: pages}}}

	return page
}

// RenderPage renders a single page to <OutputDir>/<id>.html.
func (r *MultiPageRenderer) RenderPage(meta PageMeta, sections []Section) error {
	return r.write(meta.Href(), r.StoryPage(meta, sections))
}

// RenderIndex renders the index page to <OutputDir>/index.html.
func (r *MultiPageRenderer) RenderIndex(title, description string, pages []PageMeta) error {
	return r.write(IndexFileName, r.IndexPage(title, description, pages))
}

func (r *MultiPageRenderer) newPage(title, description string) *Page {
	page := NewPage(title, description)
	page.Theme = r.Theme

	if r.Title != "" {
		page.ProjectName = r.Title
	}

	if r.AssetsHost != "" {
		page.AssetsHost = r.AssetsHost
	}

	return page
}

func (r *MultiPageRenderer) write(name string, page *Page) error {
	err := os.MkdirAll(r.OutputDir, dirFileMode)
	if err != nil {
		return fmt.Errorf("create %s: %w", r.OutputDir, err)
	}

	outPath := filepath.Join(r.OutputDir, name)

	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, pageFileMode)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	renderErr := HTMLRenderer{}.Render(f, page)
	if renderErr != nil {
		return fmt.Errorf("render %s: %w", name, renderErr)
	}

	return nil
}
