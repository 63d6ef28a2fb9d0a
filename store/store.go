// Package store persists the focustodo snapshot under a single key in a
// local key-value database
package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ayoisaiah/focustodo/internal/apperr"
	"github.com/ayoisaiah/focustodo/internal/models"
)

// StateKey is the key the whole snapshot is stored under.
const StateKey = "todo-storage"

// Backend names accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

var (
	errUnknownBackend = &apperr.Error{
		Message: "unknown storage backend %q: expected bolt or sqlite",
	}

	errFocusRunning = &apperr.Error{
		Message: "is focustodo already running? Only one instance can be active at a time",
	}

	errDecodeSnapshot = &apperr.Error{
		Message: "stored state is not valid",
	}

	errUnknownFormat = &apperr.Error{
		Message: "unknown export format %q: expected json or yaml",
	}
)

// DB is a key-value store.
type DB interface {
	// Get returns the value stored under key, or nil if there is none.
	Get(key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error
	// Close releases the database.
	Close() error
}

// Open opens the database at path using the named backend.
func Open(backend, path string) (DB, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendBolt:
		return NewBoltClient(path)
	case BackendSQLite:
		return NewSQLiteClient(path)
	}

	return nil, errUnknownBackend.Fmt(backend)
}

// LoadSnapshot reads the stored snapshot. When nothing has been stored yet
// the empty, idle snapshot for defaultDuration is returned.
func LoadSnapshot(db DB, defaultDuration time.Duration) (models.Snapshot, error) {
	b, err := db.Get(StateKey)
	if err != nil {
		return models.Snapshot{}, err
	}

	if len(b) == 0 {
		return models.NewSnapshot(defaultDuration), nil
	}

	var snap models.Snapshot

	err = json.Unmarshal(b, &snap)
	if err != nil {
		return models.Snapshot{}, errDecodeSnapshot.Wrap(err)
	}

	if snap.Todos == nil {
		snap.Todos = []models.Task{}
	}

	return snap, nil
}

// SaveSnapshot writes snap under StateKey.
func SaveSnapshot(db DB, snap models.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return db.Put(StateKey, b)
}
