package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Path = "/tmp/cookiemsg.sqlite"
	require.NoError(t, validateConfig(cfg))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "listen without port",
			mutate:  func(c *Config) { c.Server.Listen = "localhost" },
			wantErr: "server.listen",
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "server.read_timeout",
		},
		{
			name:    "negative history depth",
			mutate:  func(c *Config) { c.Database.HistoryDepth = -1 },
			wantErr: "database.history_depth",
		},
		{
			name:    "empty path without ephemeral",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name: "file log without size",
			mutate: func(c *Config) {
				c.Logging.EnableFileLog = true
				c.Logging.MaxSizeMB = 0
			},
			wantErr: "logging.max_size_mb",
		},
		{
			name:    "csrf key not hex",
			mutate:  func(c *Config) { c.Security.CSRFKey = "not-hex" },
			wantErr: "security.csrf_key must be hex",
		},
		{
			name:    "csrf key too short",
			mutate:  func(c *Config) { c.Security.CSRFKey = "00ff" },
			wantErr: "at least 16 bytes",
		},
		{
			name:    "zero token ttl",
			mutate:  func(c *Config) { c.Security.CSRFTokenTTL = 0 },
			wantErr: "security.csrf_token_ttl",
		},
		{
			name:    "role header with colon",
			mutate:  func(c *Config) { c.Security.RoleHeader = "X-Role:" },
			wantErr: "security.role_header",
		},
		{
			name:    "unknown capability",
			mutate:  func(c *Config) { c.Security.Roles = map[string][]string{"editor": {"publish"}} },
			wantErr: `security.roles.editor: unknown capability "publish"`,
		},
		{
			name:    "namespace with space",
			mutate:  func(c *Config) { c.Options.Namespace = "cookie notice" },
			wantErr: "options.namespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Database.Path = "/tmp/cookiemsg.sqlite"
			tt.mutate(cfg)

			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_EphemeralWithoutPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Ephemeral = true
	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfig_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Path = "/tmp/cookiemsg.sqlite"
	cfg.Logging.Format = "xml"
	cfg.Server.WriteTimeout = 0

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
	assert.Contains(t, err.Error(), "server.write_timeout")
}
