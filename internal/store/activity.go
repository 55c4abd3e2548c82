package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"
)

// ActivityLog records handled commands in an embedded SQLite database so
// status reports can aggregate recent usage across restarts.
type ActivityLog struct{ db *sql.DB }

// OpenActivity opens (or creates) the activity database at the given path,
// applies recommended PRAGMAs and runs the SQL migrations.
func OpenActivity(ctx context.Context, path string) (*ActivityLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &ActivityLog{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (l *ActivityLog) Close() error {
	return l.db.Close()
}

// Record stores one handled command.
func (l *ActivityLog) Record(ctx context.Context, userTag, command string, at time.Time) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO command_log (user_tag, command, created_at)
		VALUES (?, ?, ?)`,
		userTag, command, at.UTC().Unix(),
	)
	return err
}

// CountSince returns per-command usage counts for commands handled at or
// after the given instant.
func (l *ActivityLog) CountSince(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT command, COUNT(*)
		FROM command_log
		WHERE created_at >= ?
		GROUP BY command
		ORDER BY command`,
		since.UTC().Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var command string
		var n int
		if err := rows.Scan(&command, &n); err != nil {
			return nil, err
		}
		counts[command] = n
	}
	return counts, rows.Err()
}

// Prune deletes entries older than the given instant and returns how many
// were removed.
func (l *ActivityLog) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := l.db.ExecContext(ctx, `
		DELETE FROM command_log
		WHERE created_at < ?`,
		before.UTC().Unix(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
