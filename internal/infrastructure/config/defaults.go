package config

import (
	"github.com/bnema/cookiemsg/internal/application/store"
	"github.com/bnema/cookiemsg/internal/infrastructure/authz"
	"github.com/bnema/cookiemsg/internal/infrastructure/persistence/sqlite"
)

const (
	defaultListen          = "127.0.0.1:8087"
	defaultReadTimeout     = 10
	defaultWriteTimeout    = 10
	defaultShutdownTimeout = 5
	defaultCSRFTokenTTL    = 60
	defaultRoleHeader      = "X-Cookiemsg-Role"
	defaultLogMaxSizeMB    = 10
	defaultLogMaxBackups   = 3
	defaultLogMaxAge       = 7
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:          defaultListen,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Database: DatabaseConfig{
			HistoryDepth: sqlite.DefaultHistoryDepth,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAge:     defaultLogMaxAge,
			Compress:   true,
		},
		Security: SecurityConfig{
			CSRFTokenTTL: defaultCSRFTokenTTL,
			RoleHeader:   defaultRoleHeader,
			Roles:        defaultRoles(),
		},
		Options: OptionsConfig{
			Namespace: store.DefaultNamespace,
		},
	}
}

func defaultRoles() map[string][]string {
	roles := make(map[string][]string)
	for role, caps := range authz.DefaultRoles() {
		names := make([]string, len(caps))
		for i, c := range caps {
			names[i] = string(c)
		}
		roles[role] = names
	}
	return roles
}
