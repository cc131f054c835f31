package commands

import (
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
	"github.com/Sumatoshi-tech/chartkit/pkg/dataset"
	"github.com/Sumatoshi-tech/chartkit/pkg/observability"
)

const (
	noValue         = "-"
	autoDomainLabel = "auto (renderer scaling)"
)

func newInspectCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <document>",
		Short: "Summarize the chart a document would render",
		Long: `Print the categories, their colors, value ranges and the Y axis domain
of the area chart a document describes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, flush, err := opts.setup(observability.ModeCLI, cmd)
			if err != nil {
				return err
			}
			defer flush()

			doc, props, err := loadDocument(opts, args[0])
			if err != nil {
				return err
			}

			return writeInspection(cmd.OutOrStdout(), args[0], doc, chart.ComposeArea(props))
		},
	}
}

func writeInspection(w io.Writer, path string, doc *dataset.Document, view *chart.AreaView) error {
	bold := color.New(color.Bold)

	_, err := bold.Fprintf(w, "%s\n", pageTitle("", doc, path))
	if err != nil {
		return fmt.Errorf("write inspection: %w", err)
	}

	fmt.Fprintf(w, "  Index:   %s\n", doc.Index)
	fmt.Fprintf(w, "  Records: %s\n", humanize.Comma(int64(len(doc.Data))))

	if view.NoData {
		color.New(color.FgYellow).Fprintf(w, "  No data: renders %q\n", view.NoDataText)

		return nil
	}

	fmt.Fprintf(w, "  Y axis:  %s\n\n", domainLabel(view.YAxis))

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Category", "Color", "Hex", "Points", "Gaps", "Min", "Max"})

	format := view.YAxis.Formatter
	if format == nil {
		format = chart.DefaultValueFormatter
	}

	for _, series := range view.Series {
		stats := summarize(series.Values)
		tbl.AppendRow(table.Row{
			series.Name,
			string(series.Color),
			series.Color.Hex(),
			stats.points,
			stats.gaps,
			stats.label(stats.minV, format),
			stats.label(stats.maxV, format),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("%d categories", len(view.Series))})
	tbl.Render()

	return nil
}

func domainLabel(axis chart.YAxis) string {
	switch {
	case !axis.HasDomain:
		return "undefined (no numeric values)"
	case axis.Domain.Auto:
		return autoDomainLabel
	}

	format := axis.Formatter
	if format == nil {
		format = chart.DefaultValueFormatter
	}

	return format(axis.Domain.Min) + " .. " + format(axis.Domain.Max)
}

type seriesStats struct {
	points int
	gaps   int
	minV   float64
	maxV   float64
}

func summarize(values []*float64) seriesStats {
	stats := seriesStats{minV: math.Inf(1), maxV: math.Inf(-1)}

	for _, v := range values {
		if v == nil {
			stats.gaps++

			continue
		}

		stats.points++
		stats.minV = math.Min(stats.minV, *v)
		stats.maxV = math.Max(stats.maxV, *v)
	}

	return stats
}

func (s seriesStats) label(v float64, format chart.ValueFormatter) string {
	if s.points == 0 {
		return noValue
	}

	return format(v)
}
