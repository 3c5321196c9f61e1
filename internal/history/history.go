// Package history keeps a small ledger of third-party-library install
// results, one entry per (builds directory, compiler spec) pair. Operators
// use it to see the last known good compiler set for a builds directory
// without digging through archived logs.
package history

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const (
	// DefaultFileName is the ledger file created inside the builds directory
	DefaultFileName = ".cbt-history.db"

	// bucketName is the BoltDB bucket name for install results
	bucketName = "tpl_results"
)

// History manages install result records using BoltDB
type History struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the ledger inside buildsDir
func Open(buildsDir string) (*History, error) {
	dbPath := filepath.Join(buildsDir, DefaultFileName)

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Create bucket if it doesn't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the ledger database
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}

	return nil
}

// Record stores the result of one install attempt, replacing any previous
// entry for the same builds directory and spec
func (h *History) Record(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	return h.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		return b.Put([]byte(key(entry.BuildsDir, entry.Spec)), data)
	})
}

// Get retrieves the last recorded result for a builds directory and spec
// Returns nil if nothing was recorded
func (h *History) Get(buildsDir, spec string) (*Entry, error) {
	var entry Entry

	err := h.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		data := b.Get([]byte(key(buildsDir, spec)))
		if data == nil {
			return nil // no record
		}

		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return nil, err
	}

	if entry.Spec == "" {
		return nil, nil
	}

	return &entry, nil
}

// List returns every recorded result, in key order
func (h *History) List() ([]Entry, error) {
	var entries []Entry

	err := h.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		return b.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}

			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func key(buildsDir, spec string) string {
	return buildsDir + "|" + spec
}
