package chart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrUnknownFormat is returned for an unrecognized value format name.
var ErrUnknownFormat = errors.New("unknown value format")

const percentScale = 100

// Value format names accepted by FormatterByName.
const (
	FormatDefault = "default"
	FormatFixed   = "fixed"
	FormatComma   = "comma"
	FormatCompact = "compact"
	FormatPercent = "percent"
)

// ValueFormatter renders a numeric value for axis ticks, tooltips and legends.
type ValueFormatter func(float64) string

// DefaultValueFormatter prints the shortest decimal that round-trips.
func DefaultValueFormatter(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FixedFormatter prints values with a fixed number of decimals.
func FixedFormatter(decimals int) ValueFormatter {
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}
}

// CommaFormatter groups thousands, e.g. 1,234,567.5.
func CommaFormatter(decimals int) ValueFormatter {
	return func(v float64) string {
		return humanize.CommafWithDigits(v, decimals)
	}
}

// CompactFormatter uses SI prefixes, e.g. 1.2k or 3.4M.
func CompactFormatter(decimals int) ValueFormatter {
	return func(v float64) string {
		return strings.ReplaceAll(humanize.SIWithDigits(v, decimals, ""), " ", "")
	}
}

// PercentFormatter treats values as ratios, e.g. 0.25 prints as 25%.
func PercentFormatter(decimals int) ValueFormatter {
	return func(v float64) string {
		return strconv.FormatFloat(v*percentScale, 'f', decimals, 64) + "%"
	}
}

// FormatterByName resolves a configured format name.
func FormatterByName(name string, decimals int) (ValueFormatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatDefault:
		return DefaultValueFormatter, nil
	case FormatFixed:
		return FixedFormatter(decimals), nil
	case FormatComma:
		return CommaFormatter(decimals), nil
	case FormatCompact:
		return CompactFormatter(decimals), nil
	case FormatPercent:
		return PercentFormatter(decimals), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}
