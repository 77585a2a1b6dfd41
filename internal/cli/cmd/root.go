// Package cmd provides Cobra CLI commands for cookiemsg.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/cookiemsg/internal/cli"
	"github.com/bnema/cookiemsg/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	ephemeral  bool
	rootCmd    = &cobra.Command{
		Use:   "cookiemsg",
		Short: "Settings service for a cookie notice admin screen",
		Long: `cookiemsg - typed settings, validation and storage for a cookie notice.

The settings are split into four tabs (general, content, styling and cookie
list). Every submission is validated field by field and stored as one
versioned document, so a concurrent edit is detected instead of lost.

Use 'cookiemsg serve' to run the settings endpoint, or explore the
subcommands to inspect the field schema and the stored options.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "init":
				return nil
			}

			if app != nil {
				// A failed RunE skips PersistentPostRun.
				_ = app.Close()
			}

			var err error
			app, err = cli.NewApp(cli.Options{ConfigFile: configFile, Ephemeral: ephemeral})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/cookiemsg/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep options in memory only")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
