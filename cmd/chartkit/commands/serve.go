package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/chartkit/pkg/gallery"
	"github.com/Sumatoshi-tech/chartkit/pkg/observability"
)

const (
	addrFlag               = "addr"
	defaultShutdownTimeout = 5 * time.Second
)

type serveOptions struct {
	addr  string
	theme string
}

func newServeCommand(opts *globalOptions) *cobra.Command {
	so := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the component gallery over HTTP",
		Long: `Serve every AreaChart and Accordion story as an HTML page, with
/healthz and a Prometheus /metrics endpoint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			providers, flush, err := opts.setup(observability.ModeServe, cmd)
			if err != nil {
				return err
			}
			defer flush()

			srv, err := newGalleryServer(opts, so.theme, providers)
			if err != nil {
				return err
			}

			addr := opts.cfg.Server.Addr
			if so.addr != "" {
				addr = so.addr
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serveGallery(ctx, opts, srv.Handler(), ln, providers.Logger)
		},
	}

	cmd.Flags().StringVar(&so.addr, addrFlag, "", "listen address (overrides config)")
	cmd.Flags().StringVar(&so.theme, themeFlag, "", "default page theme: light or dark (overrides config)")

	return cmd
}

// newGalleryServer builds the gallery with the configured chart defaults and
// the given telemetry providers.
func newGalleryServer(opts *globalOptions, theme string, providers observability.Providers) (*gallery.Server, error) {
	defaults, err := opts.cfg.Chart.AreaDefaults()
	if err != nil {
		return nil, fmt.Errorf("chart defaults: %w", err)
	}

	galleryOpts := gallery.Options{
		Theme:          opts.theme(theme),
		AssetsHost:     opts.cfg.Chart.AssetsHost,
		Defaults:       &defaults,
		Logger:         providers.Logger,
		Tracer:         providers.Tracer,
		MetricsHandler: providers.MetricsHandler,
	}

	if providers.Meter != nil {
		red, redErr := observability.NewREDMetrics(providers.Meter)
		if redErr != nil {
			return nil, fmt.Errorf("request metrics: %w", redErr)
		}

		renders, renderErr := observability.NewRenderMetrics(providers.Meter)
		if renderErr != nil {
			return nil, fmt.Errorf("render metrics: %w", renderErr)
		}

		galleryOpts.RED = red
		galleryOpts.Metrics = renders
	}

	return gallery.NewServer(gallery.DefaultRegistry(), galleryOpts), nil
}

// serveGallery serves handler on ln until ctx is done, then shuts down
// within the configured timeout.
func serveGallery(
	ctx context.Context,
	opts *globalOptions,
	handler http.Handler,
	ln net.Listener,
	logger *slog.Logger,
) error {
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  opts.cfg.Server.ReadTimeout,
		WriteTimeout: opts.cfg.Server.WriteTimeout,
		IdleTimeout:  opts.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Serve(ln)
	}()

	logger.InfoContext(ctx, "gallery listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down gallery")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout(opts))
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func shutdownTimeout(opts *globalOptions) time.Duration {
	if opts.cfg.Server.ShutdownTimeout > 0 {
		return opts.cfg.Server.ShutdownTimeout
	}

	return defaultShutdownTimeout
}
