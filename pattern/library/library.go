// Package library stores named patterns in a SQLite database.
//
// Each entry holds the pattern file encoding of an engine plus a few
// columns (mode, shape, timestamps) for listing without decoding.
// A Store is safe for concurrent use.
package library

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cwbudde/algo-patgen/pattern"
	"github.com/cwbudde/algo-patgen/pattern/patfile"
)

//go:embed schema.sql
var schemaSQL string

const schemaVersion = 1

var (
	// ErrNotFound reports an unknown entry ID or name.
	ErrNotFound = errors.New("pattern not found")
	// ErrInvalidName reports an empty entry name.
	ErrInvalidName = errors.New("pattern name must not be empty")
)

// Entry describes one stored pattern.
type Entry struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Mode      pattern.Mode `json:"mode"`
	Channels  int          `json:"channels"`
	Steps     int          `json:"steps"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Store is a pattern library backed by SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the library at path. ":memory:" opens a private
// in-memory library.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open library: %w", err)
	}

	// SQLite allows a single writer; one connection also keeps ":memory:"
	// databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func applyPragmas(db *sql.DB) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores e under name, replacing an existing entry of the same name.
// A replaced entry keeps its ID and creation time.
func (s *Store) Save(ctx context.Context, name string, e *pattern.Engine) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, ErrInvalidName
	}

	var data bytes.Buffer
	if err := patfile.Write(&data, e); err != nil {
		return Entry{}, fmt.Errorf("save %q: %w", name, err)
	}

	now := s.now().UTC()
	entry := Entry{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      name,
		Mode:      e.Config().Mode,
		Channels:  e.Channels(),
		Steps:     e.Steps(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("save %q: %w", name, err)
	}
	defer tx.Rollback()

	var id string
	var created int64
	err = tx.QueryRowContext(ctx, `SELECT id, created_at FROM patterns WHERE name = ?`, name).Scan(&id, &created)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO patterns (id, name, mode, channels, steps, data, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, entry.ID, entry.Name, entry.Mode.String(), entry.Channels, entry.Steps, data.Bytes(),
			now.UnixNano(), now.UnixNano())
	case err == nil:
		entry.ID = id
		entry.CreatedAt = time.Unix(0, created).UTC()
		_, err = tx.ExecContext(ctx, `
			UPDATE patterns SET mode = ?, channels = ?, steps = ?, data = ?, updated_at = ?
			WHERE id = ?
		`, entry.Mode.String(), entry.Channels, entry.Steps, data.Bytes(), now.UnixNano(), id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("save %q: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("save %q: %w", name, err)
	}
	return entry, nil
}

// Load returns the engine stored under id.
func (s *Store) Load(ctx context.Context, id string, opts ...pattern.Option) (*pattern.Engine, error) {
	return s.load(ctx, "id", id, opts)
}

// LoadByName returns the engine stored under name.
func (s *Store) LoadByName(ctx context.Context, name string, opts ...pattern.Option) (*pattern.Engine, error) {
	return s.load(ctx, "name", strings.TrimSpace(name), opts)
}

func (s *Store) load(ctx context.Context, column, key string, opts []pattern.Option) (*pattern.Engine, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM patterns WHERE `+column+` = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, column, key)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %q: %w", column, key, err)
	}

	e, err := patfile.Read(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s %q: %w", column, key, err)
	}
	return e, nil
}

// List returns every entry ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, mode, channels, steps, created_at, updated_at
		FROM patterns ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                Entry
			mode             string
			created, updated int64
		)
		if err := rows.Scan(&e.ID, &e.Name, &mode, &e.Channels, &e.Steps, &created, &updated); err != nil {
			return nil, fmt.Errorf("list patterns: %w", err)
		}
		if e.Mode, err = pattern.ParseMode(mode); err != nil {
			return nil, fmt.Errorf("list patterns: %q: %w", e.Name, err)
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		e.UpdatedAt = time.Unix(0, updated).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	return entries, nil
}

// Delete removes the entry whose ID or name equals idOrName.
func (s *Store) Delete(ctx context.Context, idOrName string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM patterns WHERE id = ? OR name = ?`, idOrName, idOrName)
	if err != nil {
		return fmt.Errorf("delete %q: %w", idOrName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: %w", idOrName, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, idOrName)
	}
	return nil
}
