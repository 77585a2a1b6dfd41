package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configFile string
	mu         sync.RWMutex
	callbacks  []func(*Config)
	watching   bool
}

// NewManager creates a new configuration manager. An empty configFile
// searches the XDG config directory and the working directory.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()

	v.SetConfigType("toml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")

		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	// COOKIEMSG_SERVER_LISTEN, COOKIEMSG_DATABASE_PATH, ...
	v.SetEnvPrefix("COOKIEMSG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names shared with logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "COOKIEMSG_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind COOKIEMSG_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "COOKIEMSG_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind COOKIEMSG_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:      v,
		configFile: configFile,
		callbacks:  make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing config file is created with defaults alongside its JSON schema.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	return m.apply()
}

func (m *Manager) readConfigFile() error {
	if m.configFile != "" {
		if _, err := os.Stat(m.configFile); errors.Is(err, os.ErrNotExist) {
			if createErr := m.createDefaultConfig(m.configFile); createErr != nil {
				return fmt.Errorf("failed to create default config at %s: %w", m.configFile, createErr)
			}
		}
	}

	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configPath(), err)
		}

		configFile, pathErr := GetConfigFile()
		if pathErr != nil {
			return fmt.Errorf("failed to get config file path: %w", pathErr)
		}
		if createErr := m.createDefaultConfig(configFile); createErr != nil {
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				configFile,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
		}
	}
	return nil
}

func (m *Manager) configPath() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	if m.configFile != "" {
		return m.configFile
	}
	configFile, _ := GetConfigFile()
	return configFile
}

// apply unmarshals, normalizes and validates the viper state into m.config.
// Must be called with m.mu held for write.
func (m *Manager) apply() error {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.configPath(),
			err,
		)
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	if err := ensureLogDir(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" || config.Database.Ephemeral {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func ensureLogDir(config *Config) error {
	if config.Logging.LogDir != "" || !config.Logging.EnableFileLog {
		return nil
	}
	logDir, err := GetLogDir()
	if err != nil {
		return fmt.Errorf("failed to get log directory: %w", err)
	}
	config.Logging.LogDir = logDir
	return nil
}

func normalizeConfig(config *Config) {
	config.Server.Listen = strings.TrimSpace(config.Server.Listen)
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	config.Security.RoleHeader = strings.TrimSpace(config.Security.RoleHeader)
	config.Options.Namespace = strings.TrimSpace(config.Options.Namespace)

	if len(config.Security.Roles) == 0 {
		config.Security.Roles = defaultRoles()
	} else {
		roles := make(map[string][]string, len(config.Security.Roles))
		for role, caps := range config.Security.Roles {
			key := strings.ToLower(strings.TrimSpace(role))
			roles[key] = append(roles[key], caps...)
		}
		config.Security.Roles = roles
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the default configuration and its JSON schema.
func (m *Manager) createDefaultConfig(configFile string) error {
	dir := filepath.Dir(configFile)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}
	if _, err := GenerateSchemaFile(dir); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Database.Path is resolved in Load, no default needed.
	m.setServerDefaults(defaults)
	m.setDatabaseDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.setSecurityDefaults(defaults)
	m.setOptionsDefaults(defaults)
}

func (m *Manager) setServerDefaults(defaults *Config) {
	m.viper.SetDefault("server.listen", defaults.Server.Listen)
	m.viper.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)
	m.viper.SetDefault("server.write_timeout", defaults.Server.WriteTimeout)
	m.viper.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
}

func (m *Manager) setDatabaseDefaults(defaults *Config) {
	m.viper.SetDefault("database.path", defaults.Database.Path)
	m.viper.SetDefault("database.ephemeral", defaults.Database.Ephemeral)
	m.viper.SetDefault("database.history_depth", defaults.Database.HistoryDepth)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

func (m *Manager) setSecurityDefaults(defaults *Config) {
	m.viper.SetDefault("security.csrf_key", defaults.Security.CSRFKey)
	m.viper.SetDefault("security.csrf_token_ttl", defaults.Security.CSRFTokenTTL)
	m.viper.SetDefault("security.role_header", defaults.Security.RoleHeader)
	// security.roles has no viper default: viper merges nested defaults key
	// by key, which would leak the built-in roles into a custom mapping.
	// normalizeConfig fills it in when the file has none.
}

func (m *Manager) setOptionsDefaults(defaults *Config) {
	m.viper.SetDefault("options.namespace", defaults.Options.Namespace)
}
