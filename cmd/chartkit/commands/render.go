package commands

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
	"github.com/Sumatoshi-tech/chartkit/pkg/dataset"
	"github.com/Sumatoshi-tech/chartkit/pkg/observability"
	"github.com/Sumatoshi-tech/chartkit/pkg/plotpage"
)

const (
	renderOutputFlag  = "output"
	renderOutputShort = "o"
	renderTitleFlag   = "title"
	renderFileMode    = 0o600
	renderComponent   = "area-chart"
)

type renderOptions struct {
	output string
	theme  string
	title  string
}

func newRenderCommand(opts *globalOptions) *cobra.Command {
	ro := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a chart document as a standalone HTML page",
		Long: `Render a YAML or JSON chart document as a standalone HTML page.

Examples:
  chartkit render sales.yaml -o sales.html
  chartkit render sales.json --theme dark > sales.html
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			providers, flush, err := opts.setup(observability.ModeCLI, cmd)
			if err != nil {
				return err
			}
			defer flush()

			metrics, err := observability.NewRenderMetrics(providers.Meter)
			if err != nil {
				return fmt.Errorf("render metrics: %w", err)
			}

			return runRender(cmd, opts, ro, args[0], metrics)
		},
	}

	cmd.Flags().StringVarP(&ro.output, renderOutputFlag, renderOutputShort, "", "output HTML file (default stdout)")
	cmd.Flags().StringVar(&ro.theme, themeFlag, "", "page theme: light or dark (overrides config)")
	cmd.Flags().StringVar(&ro.title, renderTitleFlag, "", "page title (default: document title)")

	return cmd
}

func runRender(
	cmd *cobra.Command,
	opts *globalOptions,
	ro *renderOptions,
	path string,
	metrics *observability.RenderMetrics,
) error {
	ctx := cmd.Context()
	start := time.Now()

	doc, props, err := loadDocument(opts, path)
	if err != nil {
		return err
	}

	theme := opts.theme(ro.theme)
	areaChart := plotpage.NewAreaChart(documentStem(path), props).WithTheme(theme)
	view := areaChart.View()

	page := plotpage.NewPage(pageTitle(ro.title, doc, path), doc.Description).WithTheme(theme)
	page.AssetsHost = opts.cfg.Chart.AssetsHost
	page.Add(plotpage.Section{
		Title: doc.Title,
		Chart: plotpage.NewCard("", "").WithContent(areaChart),
	})

	var buf bytes.Buffer

	err = page.Render(&buf)
	metrics.RecordRender(ctx, observability.RenderStats{
		Component: renderComponent,
		Duration:  time.Since(start),
		Points:    pointCount(view),
		NoData:    view.NoData,
		Err:       err,
	})

	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	size := buf.Len()

	err = writeOutput(cmd.OutOrStdout(), ro.output, buf.Bytes())
	if err != nil {
		return err
	}

	slog.Default().InfoContext(ctx, "rendered chart",
		"document", path,
		"output", outputLabel(ro.output),
		"size", humanize.Bytes(uint64(size)),
		"records", len(doc.Data),
		"no_data", view.NoData,
	)

	return nil
}

// loadDocument loads a document and resolves its props over the configured
// chart defaults.
func loadDocument(opts *globalOptions, path string) (*dataset.Document, chart.AreaChartProps, error) {
	defaults, err := opts.cfg.Chart.AreaDefaults()
	if err != nil {
		return nil, chart.AreaChartProps{}, fmt.Errorf("chart defaults: %w", err)
	}

	doc, err := dataset.Load(path)
	if err != nil {
		return nil, chart.AreaChartProps{}, err
	}

	props, err := doc.Props(defaults)
	if err != nil {
		return nil, chart.AreaChartProps{}, fmt.Errorf("%s: %w", path, err)
	}

	return doc, props, nil
}

func writeOutput(stdout io.Writer, output string, content []byte) error {
	if output == "" {
		_, err := stdout.Write(content)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		return nil
	}

	err := os.WriteFile(output, content, renderFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	return nil
}

func outputLabel(output string) string {
	if output == "" {
		return "stdout"
	}

	return output
}

func pageTitle(flagTitle string, doc *dataset.Document, path string) string {
	switch {
	case flagTitle != "":
		return flagTitle
	case doc.Title != "":
		return doc.Title
	default:
		return documentStem(path)
	}
}

// documentStem is the file name without directory or extension.
func documentStem(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// pointCount counts the plotted values, gaps excluded.
func pointCount(view *chart.AreaView) int {
	total := 0

	for _, series := range view.Series {
		for _, v := range series.Values {
			if v != nil {
				total++
			}
		}
	}

	return total
}
