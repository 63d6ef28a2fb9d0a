package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/focustodo/internal/osutil"
)

const kvSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// SQLiteClient stores values in a single key-value table.
type SQLiteClient struct {
	db *sql.DB
}

// NewSQLiteClient opens or creates the SQLite database at dbPath.
func NewSQLiteClient(dbPath string) (*SQLiteClient, error) {
	err := os.MkdirAll(filepath.Dir(dbPath), osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(dbPath, os.O_RDWR|os.O_CREATE, osutil.FilePermission)
	if err != nil {
		return nil, err
	}

	_ = f.Close()

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(1000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// a single connection keeps writes ordered
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(kvSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

// Get returns the value stored under key.
func (c *SQLiteClient) Get(key string) ([]byte, error) {
	var value []byte

	err := c.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	return value, nil
}

// Put stores value under key.
func (c *SQLiteClient) Put(key string, value []byte) error {
	_, err := c.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

// Close closes the database.
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}
