package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// Config represents the complete configuration for cookiemsg.
type Config struct {
	// Server configures the HTTP settings endpoint.
	Server   ServerConfig   `mapstructure:"server" toml:"server" json:"server"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
	// Security holds the CSRF key and the role to capability mapping.
	Security SecurityConfig `mapstructure:"security" toml:"security" json:"security"`
	Options  OptionsConfig  `mapstructure:"options" toml:"options" json:"options"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Listen string `mapstructure:"listen" toml:"listen" json:"listen" jsonschema:"description=Address the settings endpoint listens on"`
	// Timeouts are in seconds.
	ReadTimeout     int `mapstructure:"read_timeout" toml:"read_timeout" json:"read_timeout" jsonschema:"minimum=1"`
	WriteTimeout    int `mapstructure:"write_timeout" toml:"write_timeout" json:"write_timeout" jsonschema:"minimum=1"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout" toml:"shutdown_timeout" json:"shutdown_timeout" jsonschema:"minimum=1"`
}

// DatabaseConfig holds the options storage settings.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/cookiemsg/cookiemsg.sqlite when empty.
	Path string `mapstructure:"path" toml:"path" json:"path"`
	// Ephemeral keeps options in memory only.
	Ephemeral bool `mapstructure:"ephemeral" toml:"ephemeral" json:"ephemeral"`
	// HistoryDepth is the number of past revisions kept; 0 disables history.
	HistoryDepth int `mapstructure:"history_depth" toml:"history_depth" json:"history_depth" jsonschema:"minimum=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=fatal"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`

	// File output configuration. LogDir defaults to $XDG_STATE_HOME/cookiemsg/logs.
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	// MaxAge is in days; 0 keeps backups regardless of age.
	MaxAge   int  `mapstructure:"max_age" toml:"max_age" json:"max_age" jsonschema:"minimum=0"`
	Compress bool `mapstructure:"compress" toml:"compress" json:"compress"`
}

// SecurityConfig holds request authentication settings.
type SecurityConfig struct {
	// CSRFKey is the hex-encoded MAC key for form tokens. When empty a random
	// key is generated at startup and tokens do not survive restarts.
	CSRFKey string `mapstructure:"csrf_key" toml:"csrf_key" json:"csrf_key"`
	// CSRFTokenTTL is the token lifetime in minutes.
	CSRFTokenTTL int `mapstructure:"csrf_token_ttl" toml:"csrf_token_ttl" json:"csrf_token_ttl" jsonschema:"minimum=1"`
	// RoleHeader is the request header set by the trusted front proxy.
	RoleHeader string `mapstructure:"role_header" toml:"role_header" json:"role_header"`
	// Roles maps a role name to capability names.
	Roles map[string][]string `mapstructure:"roles" toml:"roles" json:"roles"`
}

// OptionsConfig holds options document settings.
type OptionsConfig struct {
	Namespace string `mapstructure:"namespace" toml:"namespace" json:"namespace"`
}

const schemaFileName = "config.schema.json"

// GenerateSchema reflects the JSON schema of Config.
func GenerateSchema() *jsonschema.Schema {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/bnema/cookiemsg/config.schema.json"
	schema.Title = "cookiemsg configuration"
	schema.Description = "Configuration schema for the cookiemsg settings service"
	return schema
}

// GenerateSchemaFile writes config.schema.json next to the config file in
// dir and returns its path.
func GenerateSchemaFile(dir string) (string, error) {
	data, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}

	schemaFile := filepath.Join(dir, schemaFileName)
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return schemaFile, nil
}
