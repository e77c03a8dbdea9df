// Package store provides persistence for saved generation bundles. The
// SQLite implementation backs the server; the browser UI keeps its own
// localStorage copy of the same item shape.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"course_content_generator/generator"
)

// ErrNotFound is returned when no item exists for the requested id.
var ErrNotFound = errors.New("saved content not found")

// SavedContentItem is the persisted unit: one generation bundle plus any
// diagrams generated for its nodes, keyed by diagram key. Items are never
// mutated in place.
type SavedContentItem struct {
	ID        string                     `json:"id"`
	Title     string                     `json:"title"`
	Timestamp int64                      `json:"timestamp"`
	Data      generator.GenerationResult `json:"data"`
	Diagrams  map[string]json.RawMessage `json:"diagrams,omitempty"`
}

// ResultStore is the persistence contract: an ordered list of items, newest
// first, with individual save and delete.
type ResultStore interface {
	List() ([]SavedContentItem, error)
	Get(id string) (SavedContentItem, error)
	Save(title string, data generator.GenerationResult, diagrams map[string]json.RawMessage) (SavedContentItem, error)
	Delete(id string) error
	Close() error
}

// Store wraps a SQLite database. Use ":memory:" for an in-memory database.
type Store struct {
	db *sql.DB
}

var _ ResultStore = (*Store)(nil)

// NewStore opens (or creates) a SQLite database at dbPath and ensures the
// table exists.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS saved_contents (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		data       TEXT NOT NULL,
		diagrams   TEXT
	)`)
	if err != nil {
		return fmt.Errorf("exec create saved_contents: %w", err)
	}
	return nil
}

// Save stores a new item under a fresh id with the current epoch-ms
// timestamp and returns it.
func (s *Store) Save(title string, data generator.GenerationResult, diagrams map[string]json.RawMessage) (SavedContentItem, error) {
	item := SavedContentItem{
		ID:        uuid.NewString(),
		Title:     title,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
		Diagrams:  diagrams,
	}

	dataJSON, err := json.Marshal(item.Data)
	if err != nil {
		return SavedContentItem{}, fmt.Errorf("marshal data: %w", err)
	}
	var diagramsJSON []byte
	if len(item.Diagrams) > 0 {
		diagramsJSON, err = json.Marshal(item.Diagrams)
		if err != nil {
			return SavedContentItem{}, fmt.Errorf("marshal diagrams: %w", err)
		}
	}

	_, err = s.db.Exec(
		`INSERT INTO saved_contents (id, title, created_at, data, diagrams) VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.Timestamp, string(dataJSON), nullableText(diagramsJSON),
	)
	if err != nil {
		return SavedContentItem{}, fmt.Errorf("insert: %w", err)
	}
	return item, nil
}

// List returns all items, newest first. Insertion order breaks timestamp
// ties so repeated saves within one millisecond keep a stable order.
func (s *Store) List() ([]SavedContentItem, error) {
	rows, err := s.db.Query(
		`SELECT id, title, created_at, data, diagrams
		 FROM saved_contents ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query list: %w", err)
	}
	defer rows.Close()

	var items []SavedContentItem
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get returns the item with the given id, or ErrNotFound.
func (s *Store) Get(id string) (SavedContentItem, error) {
	row := s.db.QueryRow(
		`SELECT id, title, created_at, data, diagrams FROM saved_contents WHERE id = ?`, id)
	item, err := scanItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedContentItem{}, ErrNotFound
	}
	return item, err
}

// Delete removes exactly the item with the given id; the relative order of
// the remaining items is untouched. Missing ids report ErrNotFound.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM saved_contents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanItem(scan func(dest ...any) error) (SavedContentItem, error) {
	var (
		item         SavedContentItem
		dataJSON     string
		diagramsJSON sql.NullString
	)
	if err := scan(&item.ID, &item.Title, &item.Timestamp, &dataJSON, &diagramsJSON); err != nil {
		return SavedContentItem{}, err
	}
	if err := json.Unmarshal([]byte(dataJSON), &item.Data); err != nil {
		return SavedContentItem{}, fmt.Errorf("decode data for %s: %w", item.ID, err)
	}
	if diagramsJSON.Valid && diagramsJSON.String != "" {
		if err := json.Unmarshal([]byte(diagramsJSON.String), &item.Diagrams); err != nil {
			return SavedContentItem{}, fmt.Errorf("decode diagrams for %s: %w", item.ID, err)
		}
	}
	return item, nil
}

func nullableText(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
