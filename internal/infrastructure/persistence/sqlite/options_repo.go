package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/cookiemsg/internal/application/port"
	"github.com/bnema/cookiemsg/internal/logging"
)

// DefaultHistoryDepth is the number of past revisions kept per namespace.
const DefaultHistoryDepth = 20

// HistoryEntry is a previously written revision of a namespace.
type HistoryEntry struct {
	Revision  int64
	Data      []byte
	WrittenAt time.Time
}

// OptionsStorage stores one blob per namespace in the options table.
type OptionsStorage struct {
	db           *sql.DB
	historyDepth int
}

var _ port.OptionsStorage = (*OptionsStorage)(nil)

// NewOptionsStorage creates a SQLite-backed options storage. A historyDepth
// of zero or less disables revision history.
func NewOptionsStorage(db *sql.DB, historyDepth int) *OptionsStorage {
	return &OptionsStorage{db: db, historyDepth: historyDepth}
}

func (s *OptionsStorage) Read(ctx context.Context, namespace string) (*port.StoredBlob, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("namespace", namespace).Msg("reading options")

	var blob port.StoredBlob
	err := s.db.QueryRowContext(ctx,
		`SELECT data, revision FROM options WHERE namespace = ?`, namespace,
	).Scan(&blob.Data, &blob.Revision)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read options %q: %w", namespace, err)
	}
	return &blob, nil
}

func (s *OptionsStorage) Write(ctx context.Context, namespace string, data []byte, expectedRevision int64) (int64, error) {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	next := expectedRevision + 1

	var res sql.Result
	if expectedRevision == 0 {
		res, err = tx.ExecContext(ctx,
			`INSERT INTO options (namespace, data, revision, updated_at)
			 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(namespace) DO NOTHING`,
			namespace, data, next)
	} else {
		res, err = tx.ExecContext(ctx,
			`UPDATE options SET data = ?, revision = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE namespace = ? AND revision = ?`,
			data, next, namespace, expectedRevision)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write options %q: %w", namespace, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check write result: %w", err)
	}
	if affected == 0 {
		var current int64
		if scanErr := tx.QueryRowContext(ctx,
			`SELECT revision FROM options WHERE namespace = ?`, namespace,
		).Scan(&current); scanErr != nil && !errors.Is(scanErr, sql.ErrNoRows) {
			return 0, fmt.Errorf("failed to read current revision: %w", scanErr)
		}
		return 0, fmt.Errorf("%w: stored %d, expected %d", port.ErrRevisionMismatch, current, expectedRevision)
	}

	if s.historyDepth > 0 {
		if err := s.recordHistory(ctx, tx, namespace, next, data); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit options %q: %w", namespace, err)
	}

	log.Debug().Str("namespace", namespace).Int64("revision", next).Int("bytes", len(data)).Msg("options written")
	return next, nil
}

func (s *OptionsStorage) recordHistory(ctx context.Context, tx *sql.Tx, namespace string, revision int64, data []byte) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO options_history (namespace, revision, data, written_at) VALUES (?, ?, ?, ?)`,
		namespace, revision, data, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("failed to record options history: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM options_history WHERE namespace = ? AND revision <= ?`,
		namespace, revision-int64(s.historyDepth),
	); err != nil {
		return fmt.Errorf("failed to prune options history: %w", err)
	}
	return nil
}

// History returns up to limit past revisions of namespace, newest first.
func (s *OptionsStorage) History(ctx context.Context, namespace string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryDepth
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT revision, data, written_at FROM options_history
		 WHERE namespace = ? ORDER BY revision DESC LIMIT ?`,
		namespace, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query options history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			e       HistoryEntry
			written int64
		)
		if err := rows.Scan(&e.Revision, &e.Data, &written); err != nil {
			return nil, fmt.Errorf("failed to scan options history: %w", err)
		}
		e.WrittenAt = time.Unix(written, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate options history: %w", err)
	}
	return entries, nil
}
