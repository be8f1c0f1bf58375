package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/pipewatch/internal/config"
	"github.com/rshade/pipewatch/internal/logging"
	"github.com/rshade/pipewatch/internal/server"
)

// NewServeCmd creates the serve command, which runs the API gateway.
func NewServeCmd() *cobra.Command {
	var (
		listen    string
		upstream  string
		verifyTLS bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API gateway and health endpoint",
		Long: `Starts an HTTP server that answers GET /api/health locally and forwards
GET /api/pipelines and GET /api/devices to the upstream pipeline API.

Upstream transport failures are answered with a 502 JSON envelope.`,
		Example: `  # Listen on the default address (:3000)
  pipewatch serve

  # Listen elsewhere and point at a different upstream
  pipewatch serve --listen 127.0.0.1:8080 --upstream https://pipelines.internal:8443`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetGlobalConfig()
			if cmd.Flags().Changed("listen") {
				cfg.Server.Listen = listen
			}
			if cmd.Flags().Changed("upstream") {
				cfg.Upstream.Origin = upstream
			}
			if cmd.Flags().Changed("verify-tls") {
				cfg.Upstream.VerifyTLS = verifyTLS
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, &cfg)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", config.DefaultListen, "address to listen on")
	cmd.Flags().StringVar(&upstream, "upstream", config.DefaultUpstreamOrigin, "upstream API origin")
	cmd.Flags().BoolVar(&verifyTLS, "verify-tls", false, "verify the upstream TLS certificate")

	return cmd
}

// runServe runs the server until ctx is cancelled.
func runServe(ctx context.Context, cfg *config.Config) error {
	log := logging.FromContext(ctx).With().Str("component", "serve").Logger()

	srv, err := server.New(cfg, log)
	if err != nil {
		return fmt.Errorf("configuring server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	log.Info().
		Str("listen", cfg.Server.Listen).
		Str("upstream", cfg.Upstream.Origin).
		Bool("verify_tls", cfg.Upstream.VerifyTLS).
		Msg("server starting")

	if err = g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
