package store

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/focustodo/internal/osutil"
)

const stateBucket = "state"

// BoltClient is a BoltDB database client.
type BoltClient struct {
	*bolt.DB
}

// Get returns the value stored under key.
func (c *BoltClient) Get(key string) ([]byte, error) {
	var value []byte

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(stateBucket)).Get([]byte(key))
		if v != nil {
			// v is only valid for the life of the transaction
			value = append([]byte(nil), v...)
		}

		return nil
	})

	return value, err
}

// Put stores value under key.
func (c *BoltClient) Put(key string, value []byte) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put([]byte(key), value)
	})
}

// openBolt creates or opens a database and locks it.
func openBolt(pathToDB string) (*bolt.DB, error) {
	err := os.MkdirAll(filepath.Dir(pathToDB), osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	db, err := bolt.Open(
		pathToDB,
		osutil.FilePermission,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errFocusRunning
		}

		return nil, err
	}

	return db, nil
}

// NewBoltClient returns a wrapper to a BoltDB connection.
func NewBoltClient(dbPath string) (*BoltClient, error) {
	db, err := openBolt(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(stateBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltClient{
		db,
	}, nil
}
