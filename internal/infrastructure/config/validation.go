package config

import (
	"encoding/hex"
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/bnema/cookiemsg/internal/infrastructure/authz"
)

// minCSRFKeyBytes is the shortest accepted CSRF MAC key.
const minCSRFKeyBytes = 16

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateServer(config)...)
	validationErrors = append(validationErrors, validateDatabase(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateSecurity(config)...)
	validationErrors = append(validationErrors, validateOptions(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateServer(config *Config) []string {
	var validationErrors []string
	if _, _, err := net.SplitHostPort(config.Server.Listen); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("server.listen must be host:port (got: %q)", config.Server.Listen))
	}
	if config.Server.ReadTimeout < 1 {
		validationErrors = append(validationErrors, "server.read_timeout must be at least 1 second")
	}
	if config.Server.WriteTimeout < 1 {
		validationErrors = append(validationErrors, "server.write_timeout must be at least 1 second")
	}
	if config.Server.ShutdownTimeout < 1 {
		validationErrors = append(validationErrors, "server.shutdown_timeout must be at least 1 second")
	}
	return validationErrors
}

func validateDatabase(config *Config) []string {
	if config.Database.HistoryDepth < 0 {
		return []string{"database.history_depth must be non-negative"}
	}
	if !config.Database.Ephemeral && strings.TrimSpace(config.Database.Path) == "" {
		return []string{"database.path cannot be empty unless database.ephemeral is set"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error, fatal (got: %s)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be one of: console, json (got: %s)", config.Logging.Format))
	}
	if config.Logging.EnableFileLog {
		if config.Logging.MaxSizeMB < 1 {
			validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
		}
		if config.Logging.MaxBackups < 0 {
			validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
		}
		if config.Logging.MaxAge < 0 {
			validationErrors = append(validationErrors, "logging.max_age must be non-negative")
		}
	}
	return validationErrors
}

func validateSecurity(config *Config) []string {
	var validationErrors []string
	sec := config.Security

	if sec.CSRFKey != "" {
		key, err := hex.DecodeString(sec.CSRFKey)
		switch {
		case err != nil:
			validationErrors = append(validationErrors, "security.csrf_key must be hex encoded")
		case len(key) < minCSRFKeyBytes:
			validationErrors = append(validationErrors,
				fmt.Sprintf("security.csrf_key must be at least %d bytes", minCSRFKeyBytes))
		}
	}
	if sec.CSRFTokenTTL < 1 {
		validationErrors = append(validationErrors, "security.csrf_token_ttl must be at least 1 minute")
	}
	if strings.TrimSpace(sec.RoleHeader) == "" {
		validationErrors = append(validationErrors, "security.role_header cannot be empty")
	} else if strings.ContainsAny(sec.RoleHeader, " :\t\r\n") {
		validationErrors = append(validationErrors, "security.role_header is not a valid header name")
	}

	roles := make([]string, 0, len(sec.Roles))
	for role := range sec.Roles {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		for _, name := range sec.Roles[role] {
			if _, err := authz.ParseCapability(name); err != nil {
				validationErrors = append(validationErrors,
					fmt.Sprintf("security.roles.%s: unknown capability %q (valid: manage_options, edit_appearance)", role, name))
			}
		}
	}
	return validationErrors
}

func validateOptions(config *Config) []string {
	ns := config.Options.Namespace
	if strings.TrimSpace(ns) == "" {
		return []string{"options.namespace cannot be empty"}
	}
	if strings.ContainsAny(ns, " \t\n") {
		return []string{fmt.Sprintf("options.namespace must not contain whitespace (got: %q)", ns)}
	}
	return nil
}
