package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crguezl/tinyclonec/internal/core"
	"github.com/crguezl/tinyclonec/internal/store/migrations"

	_ "modernc.org/sqlite" // pure-Go SQLite driver (no CGO)
)

// Store implements core.Store backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite DB at path and applies migrations.
func Open(path string) (*Store, error) {
	// Plain file paths get their parent directory created, best-effort.
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(filepath.Clean(path)); dir != "." && dir != "" {
			_ = os.MkdirAll(dir, 0o755)
		}
	}

	// For modernc.org/sqlite, the DSN can be a simple file path.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Single connection: SQLite serializes writers anyway, and an
	// in-memory database lives only as long as its one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Pragmas to improve concurrency & reliability.
	_, _ = db.Exec("PRAGMA busy_timeout = 5000;")
	_, _ = db.Exec("PRAGMA journal_mode = WAL;")
	_, _ = db.Exec("PRAGMA foreign_keys = ON;")

	if err := migrations.Apply(db, "sqlite"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying DB.
func (s *Store) Close() error { return s.db.Close() }

// Create inserts a new link and writes the assigned identifier into l.ID.
// Returns core.ErrDuplicateURL if the url is already stored.
func (s *Store) Create(ctx context.Context, l *core.Link) error {
	const q = `INSERT INTO links(url, view_count, created_at) VALUES (?, 0, ?);`
	res, err := s.db.ExecContext(ctx, q, l.URL, l.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrDuplicateURL
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}

// FindByURL returns the link holding exactly url.
func (s *Store) FindByURL(ctx context.Context, url string) (*core.Link, error) {
	const q = `
SELECT id, url, view_count, created_at
FROM links
WHERE url = ?
LIMIT 1;`
	return scanLink(s.db.QueryRowContext(ctx, q, url))
}

// FindByID returns the link for the given identifier.
func (s *Store) FindByID(ctx context.Context, identifier int64) (*core.Link, error) {
	const q = `
SELECT id, url, view_count, created_at
FROM links
WHERE id = ?
LIMIT 1;`
	return scanLink(s.db.QueryRowContext(ctx, q, identifier))
}

// RecordView adds one view to the identifier's link.
// If the identifier is unassigned, return core.ErrNotFound so the caller
// can 404.
func (s *Store) RecordView(ctx context.Context, identifier int64) error {
	const q = `UPDATE links SET view_count = view_count + 1 WHERE id = ?;`
	res, err := s.db.ExecContext(ctx, q, identifier)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Recent returns up to limit links, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]core.Link, error) {
	const q = `
SELECT id, url, view_count, created_at
FROM links
ORDER BY id DESC
LIMIT ?;`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	// The pool holds one connection; rows must close on every path.
	defer rows.Close()

	var links []core.Link
	for rows.Next() {
		var l core.Link
		var created time.Time
		if err := rows.Scan(&l.ID, &l.URL, &l.ViewCount, &created); err != nil {
			return nil, err
		}
		l.CreatedAt = created.UTC()
		links = append(links, l)
	}
	return links, rows.Err()
}

func scanLink(row *sql.Row) (*core.Link, error) {
	var l core.Link
	var created time.Time
	if err := row.Scan(&l.ID, &l.URL, &l.ViewCount, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	l.CreatedAt = created.UTC()
	return &l, nil
}

// isUniqueViolation detects the url uniqueness constraint by message;
// the driver exposes no structured error codes through database/sql.
func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

// Compile-time check: *Store implements core.Store.
var _ core.Store = (*Store)(nil)
