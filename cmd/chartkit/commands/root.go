// Package commands implements the chartkit CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/chartkit/pkg/config"
	"github.com/Sumatoshi-tech/chartkit/pkg/observability"
	"github.com/Sumatoshi-tech/chartkit/pkg/plotpage"
	"github.com/Sumatoshi-tech/chartkit/pkg/version"
)

const (
	configFlag    = "config"
	verboseFlag   = "verbose"
	quietFlag     = "quiet"
	logFormatFlag = "log-format"
	themeFlag     = "theme"
	logFormatJSON = "json"
	environment   = "local"
)

// globalOptions carries the persistent flags and the configuration they load.
type globalOptions struct {
	configPath string
	verbose    bool
	quiet      bool
	logFormat  string

	cfg *config.Config
}

// NewRootCommand creates the chartkit root command with every subcommand.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "chartkit",
		Short: "Area charts and accordions rendered to standalone HTML",
		Long: `chartkit renders area charts from YAML or JSON data documents and
serves a gallery of every chart and accordion variant.

Configuration is read from chartkit.yaml (., ./config or /etc/chartkit)
and CHARTKIT_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, configFlag, "", "path to chartkit.yaml")
	flags.BoolVarP(&opts.verbose, verboseFlag, "v", false, "debug logging")
	flags.BoolVarP(&opts.quiet, quietFlag, "q", false, "log errors only")
	flags.StringVar(&opts.logFormat, logFormatFlag, "", "log format: text or json (overrides config)")

	rootCmd.AddCommand(
		newRenderCommand(opts),
		newInspectCommand(opts),
		newValidateCommand(opts),
		newServeCommand(opts),
		newExportCommand(opts),
		newSchemaCommand(),
		newVersionCommand(),
	)

	return rootCmd
}

func (o *globalOptions) load() error {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	o.cfg = cfg

	return nil
}

// telemetry builds the observability config for mode from the loaded
// configuration and flags.
func (o *globalOptions) telemetry(mode observability.AppMode, cmd *cobra.Command) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.Mode = mode
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = environment
	obsCfg.LogOutput = cmd.ErrOrStderr()

	if o.cfg == nil {
		return obsCfg
	}

	obsCfg.ServiceName = o.cfg.Telemetry.ServiceName
	obsCfg.OTLPEndpoint = o.cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = o.cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = o.cfg.Telemetry.SampleRatio
	obsCfg.ShutdownTimeoutSec = int(o.cfg.Server.ShutdownTimeout.Seconds())
	obsCfg.LogLevel = observability.ParseLogLevel(o.cfg.Logging.Level)
	obsCfg.LogJSON = o.cfg.Logging.Format == logFormatJSON

	switch {
	case o.verbose:
		obsCfg.LogLevel = slog.LevelDebug
	case o.quiet:
		obsCfg.LogLevel = slog.LevelError
	}

	if o.logFormat != "" {
		obsCfg.LogJSON = o.logFormat == logFormatJSON
	}

	return obsCfg
}

// setup initializes observability and installs its logger as the default.
// The returned function flushes telemetry.
func (o *globalOptions) setup(mode observability.AppMode, cmd *cobra.Command) (observability.Providers, func(), error) {
	providers, err := observability.Init(o.telemetry(mode, cmd))
	if err != nil {
		return observability.Providers{}, nil, fmt.Errorf("init observability: %w", err)
	}

	slog.SetDefault(providers.Logger)

	flush := func() {
		shutdownErr := providers.Shutdown(context.WithoutCancel(cmd.Context()))
		if shutdownErr != nil {
			providers.Logger.Warn("telemetry shutdown failed", "error", shutdownErr)
		}
	}

	return providers, flush, nil
}

// theme resolves the --theme flag, falling back to the configured theme.
func (o *globalOptions) theme(flagValue string) plotpage.Theme {
	if flagValue != "" {
		return plotpage.ParseTheme(flagValue)
	}

	return o.cfg.Chart.PageTheme()
}
