package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/chartkit/pkg/observability"
	"github.com/Sumatoshi-tech/chartkit/pkg/plotpage"
)

type exportOptions struct {
	theme string
}

func newExportCommand(opts *globalOptions) *cobra.Command {
	eo := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "Write the component gallery as static HTML files",
		Long: `Write one HTML file per gallery story plus index.html into dir, for
hosting without the gallery server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			providers, flush, err := opts.setup(observability.ModeCLI, cmd)
			if err != nil {
				return err
			}
			defer flush()

			srv, err := newGalleryServer(opts, eo.theme, providers)
			if err != nil {
				return err
			}

			err = srv.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			providers.Logger.InfoContext(cmd.Context(), "exported gallery",
				"index", filepath.Join(args[0], plotpage.IndexFileName))

			return nil
		},
	}

	cmd.Flags().StringVar(&eo.theme, themeFlag, "", "page theme: light or dark (overrides config)")

	return cmd
}
