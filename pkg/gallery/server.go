package gallery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
	"github.com/Sumatoshi-tech/chartkit/pkg/observability"
	"github.com/Sumatoshi-tech/chartkit/pkg/plotpage"
)

const (
	defaultTitle       = "chartkit stories"
	indexDescription   = "Every chart and layout component, one page per story."
	themeQueryParam    = "theme"
	contentTypeHTML    = "text/html; charset=utf-8"
	htmlSuffix         = ".html"
	logKeyStory        = "story"
	logKeyTheme        = "theme"
	logKeyError        = "error"
	logKeyDurationMsec = "duration_ms"
)

// Options configure a Server.
type Options struct {
	Title      string
	Theme      plotpage.Theme
	AssetsHost string
	// Defaults seed every chart; nil means chart.DefaultAreaChartProps.
	Defaults *chart.AreaChartProps
	Logger   *slog.Logger

	// Tracer and RED wrap the handler in request tracing and metrics.
	Tracer trace.Tracer
	RED    *observability.REDMetrics

	// Metrics records every story render.
	Metrics *observability.RenderMetrics

	// MetricsHandler, when set, is mounted at /metrics.
	MetricsHandler http.Handler
}

// Server renders stories over HTTP and to static files.
type Server struct {
	reg  *Registry
	opts Options
}

// NewServer creates a server for reg.
func NewServer(reg *Registry, opts Options) *Server {
	if opts.Title == "" {
		opts.Title = defaultTitle
	}

	if opts.Theme == "" {
		opts.Theme = plotpage.ThemeLight
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Defaults == nil {
		defaults := chart.DefaultAreaChartProps()
		opts.Defaults = &defaults
	}

	return &Server{reg: reg, opts: opts}
}

// Handler returns the HTTP handler: the index at / and /index.html, each
// story at /<id>.html, /healthz and optionally /metrics. Any page accepts
// ?theme=dark.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /{page}", s.handlePage)
	mux.Handle("GET /healthz", observability.HealthHandler())

	if s.opts.MetricsHandler != nil {
		mux.Handle("GET /metrics", s.opts.MetricsHandler)
	}

	if s.opts.Tracer == nil {
		return mux
	}

	return observability.HTTPMiddleware(s.opts.Tracer, s.opts.RED, mux)
}

func (s *Server) handleIndex(rw http.ResponseWriter, hr *http.Request) {
	var buf bytes.Buffer

	err := s.RenderIndex(&buf, s.themeFor(hr))
	s.respond(rw, hr, &buf, "index", err)
}

func (s *Server) handlePage(rw http.ResponseWriter, hr *http.Request) {
	page := hr.PathValue("page")
	if page == plotpage.IndexFileName {
		s.handleIndex(rw, hr)

		return
	}

	id, ok := strings.CutSuffix(page, htmlSuffix)
	if !ok {
		id = page
	}

	var buf bytes.Buffer

	err := s.RenderStory(hr.Context(), &buf, id, s.themeFor(hr))
	s.respond(rw, hr, &buf, id, err)
}

func (s *Server) respond(rw http.ResponseWriter, hr *http.Request, buf *bytes.Buffer, name string, err error) {
	switch {
	case errors.Is(err, ErrUnknownStory):
		http.NotFound(rw, hr)
	case err != nil:
		s.opts.Logger.ErrorContext(hr.Context(), "render failed", logKeyStory, name, logKeyError, err)
		http.Error(rw, "render failed", http.StatusInternalServerError)
	default:
		rw.Header().Set("Content-Type", contentTypeHTML)

		_, writeErr := buf.WriteTo(rw)
		if writeErr != nil {
			s.opts.Logger.WarnContext(hr.Context(), "write response", logKeyStory, name, logKeyError, writeErr)
		}
	}
}

func (s *Server) themeFor(hr *http.Request) plotpage.Theme {
	if raw := hr.URL.Query().Get(themeQueryParam); raw != "" {
		return plotpage.ParseTheme(raw)
	}

	return s.opts.Theme
}

func (s *Server) renderer(theme plotpage.Theme, dir string) *plotpage.MultiPageRenderer {
	return &plotpage.MultiPageRenderer{
		OutputDir:  dir,
		Title:      s.opts.Title,
		Theme:      theme,
		AssetsHost: s.opts.AssetsHost,
	}
}

// RenderIndex writes the index page.
func (s *Server) RenderIndex(w io.Writer, theme plotpage.Theme) error {
	page := s.renderer(theme, "").IndexPage(s.opts.Title, indexDescription, s.reg.Metas())

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render index: %w", err)
	}

	return nil
}

// RenderStory writes the page of story id.
func (s *Server) RenderStory(ctx context.Context, w io.Writer, id string, theme plotpage.Theme) error {
	story, err := s.reg.Lookup(id)
	if err != nil {
		return err
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.String(observability.AttrTheme, string(theme)))
	ctx = observability.WithLogAttrs(ctx, slog.String(logKeyStory, story.ID), slog.String(logKeyTheme, string(theme)))

	start := time.Now()
	content := story.Build(s.env(theme))

	err = s.renderer(theme, "").StoryPage(story.Meta(), content.Sections).Render(w)
	s.record(ctx, story, content, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("render story %s: %w", id, err)
	}

	return nil
}

// Export writes every story plus the index as static HTML files into dir.
func (s *Server) Export(ctx context.Context, dir string) error {
	renderer := s.renderer(s.opts.Theme, dir)

	for _, story := range s.reg.Stories() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("export: %w", err)
		}

		storyCtx := observability.WithLogAttrs(ctx, slog.String(logKeyStory, story.ID))

		start := time.Now()
		content := story.Build(s.env(s.opts.Theme))

		err := renderer.RenderPage(story.Meta(), content.Sections)
		s.record(storyCtx, story, content, time.Since(start), err)

		if err != nil {
			return fmt.Errorf("export story %s: %w", story.ID, err)
		}

		s.opts.Logger.DebugContext(storyCtx, "exported story")
	}

	err := renderer.RenderIndex(s.opts.Title, indexDescription, s.reg.Metas())
	if err != nil {
		return fmt.Errorf("export index: %w", err)
	}

	return nil
}

func (s *Server) env(theme plotpage.Theme) Env {
	return Env{Theme: theme, Defaults: *s.opts.Defaults}
}

func (s *Server) record(ctx context.Context, story Story, content Content, elapsed time.Duration, err error) {
	points := countPoints(content.Charts)

	s.opts.Logger.DebugContext(ctx, "rendered story", logKeyDurationMsec, elapsed.Milliseconds())

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String(observability.AttrStory, story.ID),
		attribute.String(observability.AttrGroup, story.Group),
		attribute.Int(observability.AttrPoints, points),
	)

	if s.opts.Metrics == nil {
		return
	}

	s.opts.Metrics.RecordRender(ctx, observability.RenderStats{
		Component: strings.ToLower(story.Group),
		Duration:  elapsed,
		Points:    points,
		NoData:    allNoData(content.Charts),
		Err:       err,
	})
}

func countPoints(charts []*plotpage.AreaChart) int {
	points := 0

	for _, c := range charts {
		for _, series := range c.View().Series {
			for _, v := range series.Values {
				if v != nil {
					points++
				}
			}
		}
	}

	return points
}

func allNoData(charts []*plotpage.AreaChart) bool {
	if len(charts) == 0 {
		return false
	}

	for _, c := range charts {
		if !c.View().NoData {
			return false
		}
	}

	return true
}
