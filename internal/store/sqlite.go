package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// SQLiteListStore persists named string lists in a sqlite database.
// Each list is one row holding the whole list as a JSON array.
type SQLiteListStore struct {
	db *sql.DB
}

// NewSQLiteListStore opens (or creates) the database at path and applies the schema.
func NewSQLiteListStore(path string) (*SQLiteListStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("store: could not set WAL mode:", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS lists (
        name TEXT PRIMARY KEY,
        items TEXT NOT NULL,
        updated_at TEXT NOT NULL
    );`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteListStore{db: db}, nil
}

// ReadList returns the named list, or an empty list if it was never written.
func (s *SQLiteListStore) ReadList(name string) ([]string, error) {
	var raw string
	err := s.db.QueryRow(`SELECT items FROM lists WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read list %q: %w", name, err)
	}

	items := []string{}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode list %q: %w", name, err)
	}
	return items, nil
}

// WriteList replaces the named list.
func (s *SQLiteListStore) WriteList(name string, items []string) error {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode list %q: %w", name, err)
	}

	_, err = s.db.Exec(`INSERT OR REPLACE INTO lists(name, items, updated_at) VALUES(?,?,?)`,
		name, string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write list %q: %w", name, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteListStore) Close() error {
	return s.db.Close()
}
