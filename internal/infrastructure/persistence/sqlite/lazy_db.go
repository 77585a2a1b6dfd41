package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/cookiemsg/internal/application/port"
	"github.com/bnema/cookiemsg/internal/logging"
)

// LazyDB implements port.DatabaseProvider with lazy initialization.
// The connection is opened and migrated by the first caller that needs it.
// Only a successful open is kept: a failed attempt, such as one cut short by
// a cancelled request, is retried by the next caller.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	mu     sync.RWMutex
}

// Compile-time interface check.
var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB creates a new lazy database provider.
// The actual connection is not established until DB() is called.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, opening it if necessary.
// Concurrent callers wait for a single open attempt.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.mu.RLock()
	db := l.db
	l.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db != nil {
		return l.db, nil
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

	db, err := NewConnection(ctx, l.dbPath)
	if err != nil {
		log.Error().Err(err).Msg("lazy database initialization failed")
		return nil, fmt.Errorf("database initialization failed: %w", err)
	}
	l.db = db
	log.Debug().Msg("lazy database initialized successfully")
	return db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// IsInitialized returns true if the database has been initialized.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}
