package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/cookiemsg/internal/infrastructure/web"
	"github.com/bnema/cookiemsg/internal/logging"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the settings HTTP endpoint",
	Long: `Serve the settings page model and accept form submissions.

Routes:
  GET  /settings?tab=...    page model of one tab, with a CSRF token
  POST /settings            form submission (tab, csrf_token, fields)
  GET  /settings/schema     field catalog and JSON schema
  GET  /healthz             liveness probe

The caller's role is read from the header named by security.role_header,
which must be set by a trusted reverse proxy. Editing the config file
updates the log level live; other settings need a restart.

Examples:
  cookiemsg serve                           # listen on server.listen
  cookiemsg serve --listen :9000            # override the listen address
  cookiemsg serve --ephemeral               # keep options in memory`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (overrides server.listen)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithComponent(logging.WithContext(ctx, app.Logger), "serve")
	log := logging.FromContext(ctx)

	handler, err := app.NewWebHandler()
	if err != nil {
		return err
	}

	serverCfg := app.ServerConfig()
	if serveListen != "" {
		serverCfg.Listen = serveListen
	}
	server := web.NewServer(serverCfg, handler.Routes())

	app.Manager.OnConfigChange(app.ApplyConfig)
	if err := app.Manager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watcher unavailable, changes need a restart")
	}

	log.Info().
		Str("storage", app.StorageDescription()).
		Str("namespace", app.Store.Namespace()).
		Msg("starting settings service")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	g.Go(func() error {
		if err := app.Warmup(gctx); err != nil {
			return fmt.Errorf("failed to open options storage: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("settings service stopped")
	return nil
}
