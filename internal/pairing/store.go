package pairing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS paired_entries (
	link              TEXT PRIMARY KEY,
	slovenian_content TEXT NOT NULL,
	english_content   TEXT NOT NULL
)`

// Store keeps pairs in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn and makes sure the schema
// exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema creates the pairs table if needed. It is idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create table paired_entries: %w", err)
	}
	return nil
}

// Save upserts pairs in a single transaction. A link that already exists
// takes the new content.
func (s *Store) Save(ctx context.Context, pairs []Pair) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO paired_entries (link, slovenian_content, english_content) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pairs {
		if _, err = stmt.ExecContext(ctx, p.Link, p.Slovenian, p.English); err != nil {
			return fmt.Errorf("insert %s: %w", p.Link, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Get returns the pair stored for link. ok is false when there is none.
func (s *Store) Get(ctx context.Context, link string) (p Pair, ok bool, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT link, slovenian_content, english_content FROM paired_entries WHERE link = ?`, link)
	if err := row.Scan(&p.Link, &p.Slovenian, &p.English); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Pair{}, false, nil
		}
		return Pair{}, false, fmt.Errorf("select %s: %w", link, err)
	}
	return p, true, nil
}

// Count returns the number of stored pairs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM paired_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pairs: %w", err)
	}
	return n, nil
}
