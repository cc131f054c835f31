package dataset

import (
	"fmt"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
	"github.com/Sumatoshi-tech/chartkit/pkg/palette"
)

// Props merges the document onto defaults and validates the result. Data,
// categories and index always come from the document.
func (d *Document) Props(defaults chart.AreaChartProps) (chart.AreaChartProps, error) {
	props := defaults
	props.Data = d.Data
	props.Categories = d.Categories
	props.Index = d.Index

	opts := d.Options

	if opts.CurveType != nil {
		curve, err := chart.ParseCurveType(*opts.CurveType)
		if err != nil {
			return props, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}

		props.CurveType = curve
	}

	if len(opts.Colors) > 0 {
		colors, err := palette.ParseColors(opts.Colors)
		if err != nil {
			return props, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}

		props.Colors = colors
	}

	if opts.ValueFormat != nil || opts.Decimals != nil {
		name := chart.FormatFixed
		if opts.ValueFormat != nil {
			name = *opts.ValueFormat
		}

		decimals := 0
		if opts.Decimals != nil {
			decimals = *opts.Decimals
		}

		formatter, err := chart.FormatterByName(name, decimals)
		if err != nil {
			return props, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}

		props.ValueFormatter = formatter
	}

	setBool(&props.Stack, opts.Stack)
	setBool(&props.StartEndOnly, opts.StartEndOnly)
	setBool(&props.ShowXAxis, opts.ShowXAxis)
	setBool(&props.ShowYAxis, opts.ShowYAxis)
	setBool(&props.ShowAnimation, opts.ShowAnimation)
	setBool(&props.ShowTooltip, opts.ShowTooltip)
	setBool(&props.ShowLegend, opts.ShowLegend)
	setBool(&props.ShowGridLines, opts.ShowGridLines)
	setBool(&props.ShowGradient, opts.ShowGradient)
	setBool(&props.AutoMinValue, opts.AutoMinValue)
	setBool(&props.ConnectNulls, opts.ConnectNulls)
	setBool(&props.AllowDecimals, opts.AllowDecimals)

	if opts.YAxisWidth != nil {
		props.YAxisWidth = *opts.YAxisWidth
	}

	if opts.Width != nil {
		props.Width = *opts.Width
	}

	if opts.MinValue != nil {
		props.MinValue = opts.MinValue
	}

	if opts.MaxValue != nil {
		props.MaxValue = opts.MaxValue
	}

	setString(&props.ClassName, opts.ClassName)
	setString(&props.NoDataText, opts.NoDataText)
	setString(&props.Height, opts.Height)

	err := props.Validate()
	if err != nil {
		return props, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return props, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
