// Package cli wires configuration, storage and use cases for the commands.
package cli

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/cookiemsg/internal/application/port"
	"github.com/bnema/cookiemsg/internal/application/store"
	"github.com/bnema/cookiemsg/internal/application/tabs"
	"github.com/bnema/cookiemsg/internal/application/usecase"
	"github.com/bnema/cookiemsg/internal/application/validator"
	"github.com/bnema/cookiemsg/internal/cli/styles"
	"github.com/bnema/cookiemsg/internal/domain/build"
	"github.com/bnema/cookiemsg/internal/domain/schema"
	"github.com/bnema/cookiemsg/internal/infrastructure/authz"
	"github.com/bnema/cookiemsg/internal/infrastructure/config"
	"github.com/bnema/cookiemsg/internal/infrastructure/persistence/memory"
	"github.com/bnema/cookiemsg/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/cookiemsg/internal/infrastructure/web"
	"github.com/bnema/cookiemsg/internal/logging"
)

// ErrHistoryUnavailable is returned by History when options live in memory.
var ErrHistoryUnavailable = errors.New("revision history requires SQLite storage (database.ephemeral is set)")

// Options control how NewApp builds the application.
type Options struct {
	// ConfigFile overrides the XDG config location.
	ConfigFile string
	// Ephemeral forces in-memory storage regardless of the config file.
	Ephemeral bool
}

type historySource interface {
	History(ctx context.Context, namespace string, limit int) ([]sqlite.HistoryEntry, error)
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	Logger    zerolog.Logger

	Registry  *schema.Registry
	Validator *validator.Validator
	Store     *store.Store

	// Use cases
	SchemaUC *usecase.GetSettingsSchemaUseCase
	ShowUC   *usecase.ShowOptionsUseCase
	ImportUC *usecase.ImportLegacyOptionsUseCase

	storage port.OptionsStorage
	history historySource
	db      *sqlite.LazyDB
	logFile *logging.LogRotator

	// Context with logger
	ctx context.Context
}

// NewApp loads the configuration and creates the application with all
// dependencies. The database is opened lazily on first use.
func NewApp(opts Options) (*App, error) {
	mgr, err := config.NewManager(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()
	if opts.Ephemeral {
		cfg.Database.Ephemeral = true
	}

	var file io.Writer
	var rotator *logging.LogRotator
	if cfg.Logging.EnableFileLog {
		rotator, err = logging.NewLogRotator(logging.RotatorConfig{
			Dir:        cfg.Logging.LogDir,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAge,
			Compress:   cfg.Logging.Compress,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = rotator
	}

	// Built at trace so ApplyLevel alone decides verbosity, including after
	// a config reload.
	logger := logging.NewWithFile("trace", cfg.Logging.Format, file)
	logging.ApplyLevel(cfg.Logging.Level)
	ctx := logging.WithContext(context.Background(), logger)

	registry := schema.NewDefaultRegistry()
	v := validator.New(registry)

	app := &App{
		Config:    cfg,
		Manager:   mgr,
		Theme:     styles.NewTheme(),
		Logger:    logger,
		Registry:  registry,
		Validator: v,
		logFile:   rotator,
		ctx:       ctx,
	}

	if cfg.Database.Ephemeral {
		app.storage = memory.NewOptionsStorage()
	} else {
		app.db = sqlite.NewLazyDB(cfg.Database.Path)
		lazy := sqlite.NewLazyOptionsStorage(app.db, cfg.Database.HistoryDepth)
		app.storage = lazy
		app.history = lazy
	}

	app.Store = store.New(app.storage, registry, cfg.Options.Namespace)
	app.SchemaUC = usecase.NewGetSettingsSchemaUseCase(registry)
	app.ShowUC = usecase.NewShowOptionsUseCase(app.Store, registry)
	app.ImportUC = usecase.NewImportLegacyOptionsUseCase(app.Store, v, registry)

	logger.Debug().
		Str("config", mgr.GetConfigFile()).
		Str("storage", app.StorageDescription()).
		Msg("app initialized")

	return app, nil
}

// Close releases all resources.
func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// StorageDescription names the options backend for display.
func (a *App) StorageDescription() string {
	if a.Config.Database.Ephemeral {
		return "memory (ephemeral)"
	}
	return a.Config.Database.Path
}

// Warmup opens and migrates the database ahead of the first request. It is
// a no-op for in-memory storage.
func (a *App) Warmup(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	db, err := a.db.DB(ctx)
	if err != nil {
		return err
	}
	version, err := sqlite.GetMigrationStatus(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	logging.FromContext(ctx).Debug().Int64("schema_version", version).Str("path", a.db.Path()).Msg("options database ready")
	return nil
}

// History returns past revisions of the options document, newest first.
func (a *App) History(ctx context.Context, limit int) ([]sqlite.HistoryEntry, error) {
	if a.history == nil {
		return nil, ErrHistoryUnavailable
	}
	return a.history.History(ctx, a.Store.Namespace(), limit)
}

// NewWebHandler builds the HTTP handler: role based capabilities, CSRF
// tokens and the HTML field renderer, all taken from the security and
// options config sections.
func (a *App) NewWebHandler() (*web.Handler, error) {
	sec := a.Config.Security

	roles, err := authz.NewRoleMapper(sec.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to build role mapping: %w", err)
	}

	key, err := hex.DecodeString(sec.CSRFKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode security.csrf_key: %w", err)
	}
	if len(key) == 0 {
		a.Logger.Warn().Msg("security.csrf_key is not set, form tokens will not survive a restart")
	}
	csrf, err := web.NewCSRF(key, time.Duration(sec.CSRFTokenTTL)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSRF protection: %w", err)
	}

	renderer := web.NewTemplateRenderer(a.Config.Options.Namespace)
	controller := tabs.NewDefaultController(a.Registry, renderer)

	return web.NewHandler(
		usecase.NewRenderSettingsPageUseCase(a.Store, controller, roles),
		usecase.NewSubmitSettingsUseCase(a.Store, a.Validator, controller, roles),
		a.SchemaUC,
		csrf,
		web.HandlerConfig{
			RoleHeader: sec.RoleHeader,
			FormPrefix: a.Config.Options.Namespace,
		},
		a.Logger,
	), nil
}

// ServerConfig converts the server section into listener settings.
func (a *App) ServerConfig() web.ServerConfig {
	srv := a.Config.Server
	return web.ServerConfig{
		Listen:          srv.Listen,
		ReadTimeout:     time.Duration(srv.ReadTimeout) * time.Second,
		WriteTimeout:    time.Duration(srv.WriteTimeout) * time.Second,
		ShutdownTimeout: time.Duration(srv.ShutdownTimeout) * time.Second,
	}
}

// ApplyConfig takes a reloaded configuration into account. Only the log
// level is applied live; storage, listener and security settings need a
// restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	prev := a.Config.Logging.Level
	lvl := logging.ApplyLevel(cfg.Logging.Level)
	if prev != cfg.Logging.Level {
		a.Logger.Info().Str("level", lvl.String()).Msg("log level updated from config")
	}
	a.Config.Logging.Level = cfg.Logging.Level
}
