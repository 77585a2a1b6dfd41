package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/cookiemsg/internal/application/usecase"
	"github.com/bnema/cookiemsg/internal/cli/styles"
	"github.com/bnema/cookiemsg/internal/domain/entity"
)

var (
	schemaTab  string
	schemaJSON bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the settings field catalog",
	Long: `List every settings field with its kind, default and bounds.

With --json the output also carries the JSON schema of the stored options
document, for front-ends that render the forms themselves.

Examples:
  cookiemsg schema                          # all tabs
  cookiemsg schema --tab styling_options    # one tab
  cookiemsg schema --json                   # machine readable`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaTab, "tab", "t", "", "only show this tab")
	schemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "output as JSON")
}

func runSchema(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	tab, err := parseTabFlag(schemaTab)
	if err != nil {
		return err
	}

	out, err := app.SchemaUC.Execute(app.Ctx(), usecase.GetSettingsSchemaInput{Tab: tab})
	if err != nil {
		return err
	}

	renderer := styles.NewSchemaRenderer(app.Theme)
	if schemaJSON {
		text, err := renderer.RenderJSON(out)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(out.Fields))
	return nil
}

// parseTabFlag maps an empty flag to "every tab".
func parseTabFlag(raw string) (entity.Tab, error) {
	if raw == "" {
		return "", nil
	}
	return entity.ParseTab(raw)
}
