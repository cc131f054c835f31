package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/chartkit/pkg/dataset"
)

// ErrDocumentInvalid is returned when validate finds problems.
var ErrDocumentInvalid = errors.New("document is invalid")

type validateOptions struct {
	colorize bool
	noColor  bool
}

func newValidateCommand(opts *globalOptions) *cobra.Command {
	vo := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Check a chart document against the document schema",
		Long: `Check a chart document against the document schema, then resolve its
colors, value format and bounds over the configured defaults.

Examples:
  chartkit validate sales.yaml
  chartkit validate --no-color sales.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case vo.noColor:
				color.NoColor = true //nolint:reassign // intentional override of library global
			case vo.colorize:
				color.NoColor = false //nolint:reassign // intentional override of library global
			}

			return runValidate(cmd.OutOrStdout(), opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&vo.colorize, "color", false, "force colored output")
	cmd.Flags().BoolVar(&vo.noColor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(w io.Writer, opts *globalOptions, path string) error {
	problems, err := documentProblems(opts, path)
	if err != nil {
		return err
	}

	if len(problems) == 0 {
		color.New(color.FgGreen).Fprintf(w, "Document is valid (%s)\n", path)

		return nil
	}

	color.New(color.FgRed).Fprintf(w, "Document validation failed (%s)\n", path)
	fmt.Fprintf(w, "\nErrors:\n")

	for _, p := range problems {
		color.New(color.FgRed).Fprintf(w, "  - %s: %s\n", p.Field, p.Description)
	}

	return fmt.Errorf("%w: %s: %d problem(s)", ErrDocumentInvalid, path, len(problems))
}

// documentProblems runs the schema check and, when it passes, resolves the
// chart props. The error is set only when the file cannot be read or decoded.
func documentProblems(opts *globalOptions, path string) ([]dataset.Problem, error) {
	if _, err := dataset.FormatFromPath(path); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	problems, err := dataset.Validate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if len(problems) > 0 {
		return problems, nil
	}

	_, _, err = loadDocument(opts, path)
	if err != nil {
		return []dataset.Problem{{Field: "(options)", Description: err.Error()}}, nil
	}

	return nil, nil
}
