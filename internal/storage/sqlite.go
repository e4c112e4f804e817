package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"codescope/internal/analysis"
	"codescope/internal/lang"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS census (
			path TEXT PRIMARY KEY,
			language TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			census JSON NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_census_hash ON census(content_hash);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) SaveCensus(ctx context.Context, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO census (path, language, content_hash, census, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			language=excluded.language,
			content_hash=excluded.content_hash,
			census=excluded.census,
			updated_at=excluded.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, e := range entries {
		data, err := json.Marshal(e.Census)
		if err != nil {
			return fmt.Errorf("failed to encode census of %s: %w", e.Path, err)
		}
		updated := now
		if !e.UpdatedAt.IsZero() {
			updated = e.UpdatedAt.Unix()
		}
		if _, err := stmt.ExecContext(ctx, e.Path, e.Language.String(), e.Hash, data, updated); err != nil {
			return fmt.Errorf("failed to save census of %s: %w", e.Path, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadCensus(ctx context.Context, path string, id lang.ID, hash string) (analysis.Census, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT census FROM census WHERE path = ? AND language = ? AND content_hash = ?",
		path, id.String(), hash)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return analysis.Census{}, false, nil
		}
		return analysis.Census{}, false, fmt.Errorf("failed to load census of %s: %w", path, err)
	}

	var c analysis.Census
	if err := json.Unmarshal(data, &c); err != nil {
		return analysis.Census{}, false, fmt.Errorf("failed to decode census of %s: %w", path, err)
	}
	return c, true, nil
}

func (s *SQLiteStore) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT path, language, content_hash, census, updated_at FROM census ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("failed to query census: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			name    string
			data    []byte
			updated int64
		)
		if err := rows.Scan(&e.Path, &name, &e.Hash, &data, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan census: %w", err)
		}
		if e.Language, err = lang.ParseID(name); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &e.Census); err != nil {
			return nil, fmt.Errorf("failed to decode census of %s: %w", e.Path, err)
		}
		e.UpdatedAt = time.Unix(updated, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "DELETE FROM census WHERE path = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range paths {
		if _, err := stmt.ExecContext(ctx, p); err != nil {
			return err
		}
	}

	return tx.Commit()
}
