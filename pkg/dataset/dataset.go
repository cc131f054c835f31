// Package dataset loads chart documents: a data set plus the chart options
// to draw it with, stored as YAML or JSON and checked against an embedded
// JSON schema.
package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
)

// Sentinel errors for document loading.
var (
	ErrInvalidDocument = errors.New("invalid chart document")
	ErrSchemaViolation = errors.New("chart document violates schema")
	ErrUnknownFormat   = errors.New("unknown document format")
)

//go:embed schema.json
var schemaJSON []byte

// Schema returns the JSON schema chart documents are validated against.
func Schema() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)

	return out
}

// Format is the encoding of a chart document.
type Format string

// Supported formats. JSON documents are decoded by the YAML decoder.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Document is a chart document.
type Document struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Index       string         `yaml:"index"`
	Categories  []string       `yaml:"categories"`
	Data        []chart.Record `yaml:"data"`
	Options     Options        `yaml:"options"`
}

// Options are the chart flags a document may set. Nil fields keep the
// defaults passed to Document.Props.
type Options struct {
	Stack         *bool    `yaml:"stack"`
	CurveType     *string  `yaml:"curve_type"`
	Colors        []string `yaml:"colors"`
	ValueFormat   *string  `yaml:"value_format"`
	Decimals      *int     `yaml:"decimals"`
	StartEndOnly  *bool    `yaml:"start_end_only"`
	ShowXAxis     *bool    `yaml:"show_x_axis"`
	ShowYAxis     *bool    `yaml:"show_y_axis"`
	YAxisWidth    *int     `yaml:"y_axis_width"`
	ShowAnimation *bool    `yaml:"show_animation"`
	ShowTooltip   *bool    `yaml:"show_tooltip"`
	ShowLegend    *bool    `yaml:"show_legend"`
	ShowGridLines *bool    `yaml:"show_grid_lines"`
	ShowGradient  *bool    `yaml:"show_gradient"`
	AutoMinValue  *bool    `yaml:"auto_min_value"`
	MinValue      *float64 `yaml:"min_value"`
	MaxValue      *float64 `yaml:"max_value"`
	ConnectNulls  *bool    `yaml:"connect_nulls"`
	AllowDecimals *bool    `yaml:"allow_decimals"`
	ClassName     *string  `yaml:"class_name"`
	NoDataText    *string  `yaml:"no_data_text"`
	Height        *string  `yaml:"height"`
	Width         *int     `yaml:"width"`
}

// Problem is one schema violation.
type Problem struct {
	Field       string
	Description string
}

// ValidationError lists every schema violation of a document.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.Field + ": " + p.Description
	}

	return fmt.Sprintf("%s: %s", ErrSchemaViolation, strings.Join(parts, "; "))
}

// Unwrap makes errors.Is(err, ErrSchemaViolation) hold.
func (e *ValidationError) Unwrap() error {
	return ErrSchemaViolation
}

// Load reads, validates and decodes the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := Parse(raw, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse validates and decodes a document.
func Parse(raw []byte, format Format) (*Document, error) {
	if format != FormatYAML && format != FormatJSON {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	problems, err := Validate(raw)
	if err != nil {
		return nil, err
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	var doc Document

	err = yaml.Unmarshal(raw, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	normalizeRecords(doc.Data)

	return &doc, nil
}

// normalizeRecords turns YAML timestamps back into the text the author wrote
// so they label the X axis as dates.
func normalizeRecords(records []chart.Record) {
	for _, rec := range records {
		for field, v := range rec {
			ts, ok := v.(time.Time)
			if !ok {
				continue
			}

			if ts.Equal(ts.Truncate(24 * time.Hour)) {
				rec[field] = ts.Format(time.DateOnly)
			} else {
				rec[field] = ts.Format(time.RFC3339)
			}
		}
	}
}

// Validate checks raw against the document schema and returns the
// violations. The error is set only when raw cannot be decoded at all.
func Validate(raw []byte) ([]Problem, error) {
	var generic any

	err := yaml.Unmarshal(raw, &generic)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if generic == nil {
		return []Problem{{Field: "(root)", Description: "document is empty"}}, nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(generic),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if result.Valid() {
		return nil, nil
	}

	problems := make([]Problem, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, Problem{Field: re.Field(), Description: re.Description()})
	}

	return problems, nil
}
