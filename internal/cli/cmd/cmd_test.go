package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cookiemsg/internal/domain/build"
	"github.com/bnema/cookiemsg/internal/domain/entity"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	return root
}

func resetFlags() {
	configFile, ephemeral = "", false
	schemaTab, schemaJSON = "", false
	optionsTab, optionsStored, optionsJSON = "", false, false
	importDryRun, historyLimit = false, 0
	configForce = false
	serveListen = ""
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// sqliteConfig writes a config storing options in root/options.sqlite.
func sqliteConfig(t *testing.T, root string) string {
	t.Helper()
	path := filepath.Join(root, "config.toml")
	content := "[database]\npath = \"" + filepath.ToSlash(filepath.Join(root, "options.sqlite")) + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfigInit_WritesFileAndSchema(t *testing.T) {
	root := isolateXDG(t)
	path := filepath.Join(root, "custom", "config.toml")

	out, err := executeCommand(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "config.toml")
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(root, "custom", "config.schema.json"))

	out, err = executeCommand(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	_, err = executeCommand(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestConfigSchema(t *testing.T) {
	isolateXDG(t)

	out, err := executeCommand(t, "config", "schema", "--ephemeral")
	require.NoError(t, err)
	assert.Contains(t, out, "cookiemsg configuration")
	assert.Contains(t, out, "csrf_token_ttl")
}

func TestConfigPath(t *testing.T) {
	root := isolateXDG(t)
	path := filepath.Join(root, "config.toml")

	out, err := executeCommand(t, "config", "path", "--config", path, "--ephemeral")
	require.NoError(t, err)
	assert.Contains(t, out, "config.toml")
	assert.Contains(t, out, "memory")
}

func TestSchema_JSON(t *testing.T) {
	isolateXDG(t)

	out, err := executeCommand(t, "schema", "--json", "--ephemeral", "--tab", "general_options")
	require.NoError(t, err)

	var parsed struct {
		Fields []struct {
			Path string `json:"path"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.NotEmpty(t, parsed.Fields)
	assert.Equal(t, "general.location_options", parsed.Fields[0].Path)
}

func TestSchema_Styled(t *testing.T) {
	isolateXDG(t)

	out, err := executeCommand(t, "schema", "--ephemeral")
	require.NoError(t, err)
	assert.Contains(t, out, "styling.opacity_slider_amount")
	assert.Contains(t, out, string(entity.TabCookieSettings))
	assert.Contains(t, out, "Positions: 0 session, 1 week, 2 month, 3 year, 4 forever")
}

func TestSchema_UnknownTab(t *testing.T) {
	isolateXDG(t)

	_, err := executeCommand(t, "schema", "--ephemeral", "--tab", "bogus")
	assert.ErrorIs(t, err, entity.ErrUnknownTab)
}

func TestOptions_ImportShowHistory(t *testing.T) {
	root := isolateXDG(t)
	cfgPath := sqliteConfig(t, root)

	export := filepath.Join(root, "legacy.json")
	require.NoError(t, os.WriteFile(export, []byte(`{
		"general": {"location_options": "bottom-fixed", "no_cookies_hide": "1"},
		"styling": {"opacity_slider_amount": 80, "message_color_picker": "ff0000"}
	}`), 0o600))

	out, err := executeCommand(t, "options", "import", export, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved version 1")

	out, err = executeCommand(t, "options", "show", "--stored", "--json", "--config", cfgPath)
	require.NoError(t, err)

	var shown struct {
		Version int64 `json:"version"`
		Options []struct {
			Path  string `json:"path"`
			Value any    `json:"value"`
		} `json:"options"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, int64(1), shown.Version)

	values := make(map[string]any)
	for _, o := range shown.Options {
		values[o.Path] = o.Value
	}
	assert.Equal(t, "bottom-fixed", values["general.location_options"])
	assert.Equal(t, true, values["general.no_cookies_hide"])
	assert.Equal(t, float64(80), values["styling.opacity_slider_amount"])
	assert.Equal(t, "#ff0000", values["styling.message_color_picker"])

	out, err = executeCommand(t, "options", "history", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "r1")
}

func TestOptions_ImportDryRun(t *testing.T) {
	root := isolateXDG(t)
	cfgPath := sqliteConfig(t, root)

	export := filepath.Join(root, "legacy.json")
	require.NoError(t, os.WriteFile(export, []byte(`{"general": {"location_options": "bottom-fixed"}}`), 0o600))

	out, err := executeCommand(t, "options", "import", export, "--dry-run", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")

	out, err = executeCommand(t, "options", "show", "--stored", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No stored options")
}

func TestOptions_ImportRejectedTab(t *testing.T) {
	root := isolateXDG(t)

	export := filepath.Join(root, "legacy.json")
	require.NoError(t, os.WriteFile(export, []byte(`{"content": {"input_button_text": "OK"}}`), 0o600))

	out, err := executeCommand(t, "options", "import", export, "--ephemeral")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 tab(s) rejected")
	assert.Contains(t, out, "content.textarea_warning_text")
}

func TestOptions_HistoryRequiresSQLite(t *testing.T) {
	isolateXDG(t)

	_, err := executeCommand(t, "options", "history", "--ephemeral")
	assert.Error(t, err)
}

func TestAbout(t *testing.T) {
	isolateXDG(t)
	SetBuildInfo(build.Info{Version: "v0.4.2", Commit: "deadbeef"})
	t.Cleanup(func() { SetBuildInfo(build.Info{}) })

	out, err := executeCommand(t, "version", "--ephemeral")
	require.NoError(t, err)
	assert.Contains(t, out, "v0.4.2")
	assert.Contains(t, out, "deadbeef")
}
