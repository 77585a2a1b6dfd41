package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "127.0.0.1:8087", mgr.viper.GetString("server.listen"))
	assert.Equal(t, "info", mgr.viper.GetString("logging.level"))
	assert.Equal(t, 20, mgr.viper.GetInt("database.history_depth"))
	assert.False(t, mgr.viper.IsSet("security.roles"))
}

func TestLoad_CreatesDefaultConfigAndSchema(t *testing.T) {
	root := isolateXDG(t)

	mgr, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	configFile := filepath.Join(root, "config", "cookiemsg", "config.toml")
	assert.FileExists(t, configFile)
	assert.FileExists(t, filepath.Join(root, "config", "cookiemsg", schemaFileName))
	assert.Equal(t, configFile, mgr.GetConfigFile())

	cfg := mgr.Get()
	assert.Equal(t, "127.0.0.1:8087", cfg.Server.Listen)
	assert.Equal(t, filepath.Join(root, "data", "cookiemsg", "cookiemsg.sqlite"), cfg.Database.Path)
	assert.Equal(t, []string{"manage_options"}, cfg.Security.Roles["options_manager"])
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "cookiemsg.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
listen = '0.0.0.0:9000'

[logging]
level = 'DEBUG'

[security.roles]
Reviewer = ['edit_appearance']
`), filePerm))

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Listen)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, map[string][]string{"reviewer": {"edit_appearance"}}, cfg.Security.Roles)
}

func TestLoad_ExplicitMissingFileIsCreated(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.FileExists(t, path)
	assert.Equal(t, DefaultConfig().Options.Namespace, mgr.Get().Options.Namespace)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateXDG(t)
	t.Setenv("COOKIEMSG_LOG_LEVEL", "warn")
	t.Setenv("COOKIEMSG_SERVER_LISTEN", "127.0.0.1:9999")
	t.Setenv("COOKIEMSG_DATABASE_EPHEMERAL", "true")

	mgr, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Listen)
	assert.True(t, cfg.Database.Ephemeral)
	assert.Empty(t, cfg.Database.Path)
}

func TestLoad_InvalidConfig(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nformat = 'xml'\n"), filePerm))

	mgr, err := NewManager(path)
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
}

func TestReload_NotifiesCallbacks(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = 'info'\n"), filePerm))

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	var seen []string
	mgr.OnConfigChange(func(cfg *Config) { seen = append(seen, cfg.Logging.Level) })

	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = 'trace'\n"), filePerm))
	require.NoError(t, mgr.Reload())
	assert.Equal(t, []string{"trace"}, seen)
	assert.Equal(t, "trace", mgr.Get().Logging.Level)

	// An invalid edit keeps the previous config and skips callbacks.
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = 'loud'\n"), filePerm))
	require.Error(t, mgr.Reload())
	assert.Equal(t, []string{"trace"}, seen)
	assert.Equal(t, "trace", mgr.Get().Logging.Level)
}

func TestGetXDGDirs_DevMode(t *testing.T) {
	t.Setenv("ENV", "dev")
	dirs, err := GetXDGDirs()
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	want := filepath.Join(cwd, ".dev", "cookiemsg")
	assert.Equal(t, want, dirs.ConfigHome)
	assert.Equal(t, want, dirs.DataHome)
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	require.NotNil(t, schema)
	assert.Equal(t, "cookiemsg configuration", schema.Title)

	dir := t.TempDir()
	path, err := GenerateSchemaFile(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"csrf_token_ttl"`)
	assert.Contains(t, string(data), `"history_depth"`)
}

func TestLoad_FileLogDirDefaultsToState(t *testing.T) {
	root := isolateXDG(t)
	t.Setenv("COOKIEMSG_LOGGING_ENABLE_FILE_LOG", "true")

	mgr, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.Equal(t, filepath.Join(root, "state", "cookiemsg", "logs"), mgr.Get().Logging.LogDir)
}

func TestGetManDir(t *testing.T) {
	root := isolateXDG(t)

	dir, err := GetManDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "data", "man", "man1"), dir)
}
