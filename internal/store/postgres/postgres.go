package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/crguezl/tinyclonec/internal/core"
	"github.com/crguezl/tinyclonec/internal/store/migrations"
)

// Store implements core.Store backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

// Open connects to the database at dsn and applies migrations.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrations.Apply(db, "postgres"); err != nil {
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
	const q = `
INSERT INTO links(url, view_count, created_at)
VALUES ($1, 0, $2)
RETURNING id;`
	if err := s.db.QueryRowContext(ctx, q, l.URL, l.CreatedAt.UTC()).Scan(&l.ID); err != nil {
		if isUniqueViolation(err) {
			return core.ErrDuplicateURL
		}
		return err
	}
	return nil
}

// FindByURL returns the link holding exactly url.
func (s *Store) FindByURL(ctx context.Context, url string) (*core.Link, error) {
	const q = `
SELECT id, url, view_count, created_at
FROM links
WHERE url = $1
LIMIT 1;`
	return scanLink(s.db.QueryRowContext(ctx, q, url))
}

// FindByID returns the link for the given identifier.
func (s *Store) FindByID(ctx context.Context, identifier int64) (*core.Link, error) {
	const q = `
SELECT id, url, view_count, created_at
FROM links
WHERE id = $1
LIMIT 1;`
	return scanLink(s.db.QueryRowContext(ctx, q, identifier))
}

// RecordView adds one view to the identifier's link.
// If the identifier is unassigned, return core.ErrNotFound so the caller
// can 404.
func (s *Store) RecordView(ctx context.Context, identifier int64) error {
	const q = `UPDATE links SET view_count = view_count + 1 WHERE id = $1;`
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
LIMIT $1;`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
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

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// Compile-time check: *Store implements core.Store.
var _ core.Store = (*Store)(nil)
