package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/cookiemsg/internal/cli/styles"
	"github.com/bnema/cookiemsg/internal/infrastructure/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show where the configuration lives, write a default file, or print its JSON schema.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file and storage in use",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and its JSON schema",
	Long: `Write the default configuration to the --config path (or the XDG location)
together with config.schema.json for editor completion.

An existing file is left alone unless --force is given.`,
	RunE: runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configInitCmd, configSchemaCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderConfigInfo(app.Manager.GetConfigFile(), app.StorageDescription()))
	return nil
}

// runConfigInit runs without an App: loading would create the file itself.
func runConfigInit(cmd *cobra.Command, _ []string) error {
	renderer := styles.NewConfigRenderer(styles.NewTheme())

	path := configFile
	if path == "" {
		var err error
		if path, err = config.GetConfigFile(); err != nil {
			return fmt.Errorf("failed to get config file path: %w", err)
		}
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderExists(path))
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := config.WriteConfigOrdered(config.DefaultConfig(), path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	schemaPath, err := config.GenerateSchemaFile(dir)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderWritten(path, schemaPath))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	data, err := json.MarshalIndent(config.GenerateSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
