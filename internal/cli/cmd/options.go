package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/cookiemsg/internal/application/usecase"
	"github.com/bnema/cookiemsg/internal/cli/styles"
)

var (
	optionsTab    string
	optionsStored bool
	optionsJSON   bool
	importDryRun  bool
	historyLimit  int
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Inspect and import stored options",
	Long:  `Show the effective options, import a legacy export, or list past revisions.`,
}

var optionsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective value of every field",
	Long: `Show the stored value of every field, or its default when nothing is stored.

Examples:
  cookiemsg options show                       # every tab
  cookiemsg options show --tab general_options
  cookiemsg options show --stored              # only explicitly stored values`,
	RunE: runOptionsShow,
}

var optionsImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import options exported from the legacy plugin",
	Long: `Import the nested option array of the legacy plugin, exported as JSON:

  {"styling": {"opacity_slider_amount": "80"}, "content": {...}}

Each tab is validated with the same rules as a form submission. Valid tabs
are merged and saved in one write; invalid tabs are reported and left
untouched. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runOptionsImport,
}

var optionsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past revisions of the options document",
	RunE:  runOptionsHistory,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.AddCommand(optionsShowCmd, optionsImportCmd, optionsHistoryCmd)

	optionsShowCmd.Flags().StringVarP(&optionsTab, "tab", "t", "", "only show this tab")
	optionsShowCmd.Flags().BoolVar(&optionsStored, "stored", false, "hide fields that use their default")
	optionsShowCmd.Flags().BoolVar(&optionsJSON, "json", false, "output as JSON")

	optionsImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate and report without writing")

	optionsHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of revisions to show (default: history depth)")
}

type optionJSON struct {
	usecase.ResolvedOption
	Value any `json:"value"`
}

func runOptionsShow(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	tab, err := parseTabFlag(optionsTab)
	if err != nil {
		return err
	}

	out, err := app.ShowUC.Execute(app.Ctx(), usecase.ShowOptionsInput{Tab: tab, StoredOnly: optionsStored})
	if err != nil {
		return err
	}

	if optionsJSON {
		opts := make([]optionJSON, len(out.Options))
		for i, o := range out.Options {
			opts[i] = optionJSON{ResolvedOption: o, Value: o.Value.Interface()}
		}
		data, err := json.MarshalIndent(map[string]any{
			"namespace": app.Store.Namespace(),
			"version":   out.Version,
			"options":   opts,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal options: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	renderer := styles.NewOptionsRenderer(app.Theme)
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderOptions(app.Store.Namespace(), out))
	return nil
}

func runOptionsImport(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	out, err := app.ImportUC.Execute(app.Ctx(), usecase.ImportLegacyOptionsInput{Data: data, DryRun: importDryRun})
	if err != nil {
		return err
	}

	renderer := styles.NewOptionsRenderer(app.Theme)
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderImport(out, importDryRun))
	if len(out.Rejected) > 0 {
		return fmt.Errorf("%d tab(s) rejected", len(out.Rejected))
	}
	return nil
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func runOptionsHistory(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	limit := historyLimit
	if limit <= 0 {
		limit = app.Config.Database.HistoryDepth
	}

	entries, err := app.History(app.Ctx(), limit)
	if err != nil {
		return err
	}

	renderer := styles.NewOptionsRenderer(app.Theme)
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderHistory(app.Store.Namespace(), entries, time.Now()))
	return nil
}
