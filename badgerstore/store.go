// Package badgerstore provides a durable pace.Storage backed by BadgerDB.
//
// Records are stored per user profile under a key namespace, as JSON
// values. "Not found" maps to absent data, matching the Storage contract.
package badgerstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/keydrill/pace"
)

const (
	statsPrefix     = "stats/"
	lastSelectedKey = "last_selected"
)

// Options configures a Store.
type Options struct {
	// Dir is the directory for the BadgerDB data files.
	// Required unless InMemory is set.
	Dir string

	// Profile namespaces all keys so several users can share one
	// database. Empty → "default".
	Profile string

	// InMemory keeps all data in RAM; nothing is persisted.
	// Useful for tests.
	InMemory bool

	// SyncWrites forces fsync after each write. Slower but durable
	// across power loss.
	SyncWrites bool

	// Logger receives BadgerDB's internal log output. nil → discarded.
	Logger *zerolog.Logger
}

// Store is a durable per-profile Storage implementation.
// Safe for concurrent use; each call runs in its own transaction.
type Store struct {
	db     *badger.DB
	prefix string
}

var _ pace.Storage = (*Store)(nil)

// Open opens (creating if needed) the database described by opts.
// The caller owns the returned Store and must Close it.
func Open(opts Options) (*Store, error) {
	bo := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bo = bo.WithInMemory(true).WithDir("").WithValueDir("")
	}
	if opts.SyncWrites {
		bo = bo.WithSyncWrites(true)
	}
	if opts.Logger != nil {
		bo = bo.WithLogger(badgerLogger{opts.Logger})
	} else {
		bo = bo.WithLogger(nil)
	}

	db, err := badger.Open(bo)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: open %q: %w", opts.Dir, err)
	}

	profile := opts.Profile
	if profile == "" {
		profile = "default"
	}
	return &Store{db: db, prefix: profile + "/"}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) statsKey(itemID string) []byte {
	return []byte(s.prefix + statsPrefix + itemID)
}

func (s *Store) slotKey() []byte {
	return []byte(s.prefix + lastSelectedKey)
}

// GetStats implements pace.Storage.
func (s *Store) GetStats(itemID string) (*pace.ItemStats, error) {
	var out *pace.ItemStats
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.statsKey(itemID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var st pace.ItemStats
			if err := json.Unmarshal(val, &st); err != nil {
				return fmt.Errorf("badgerstore: decode stats for %q: %w", itemID, err)
			}
			out = &st
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetStats implements pace.Storage.
func (s *Store) SetStats(itemID string, stats pace.ItemStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("badgerstore: encode stats for %q: %w", itemID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.statsKey(itemID), data)
	})
}

// LastSelected implements pace.Storage.
func (s *Store) LastSelected() (string, error) {
	var out string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.slotKey())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = string(val)
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// SetLastSelected implements pace.Storage.
func (s *Store) SetLastSelected(itemID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.slotKey(), []byte(itemID))
	})
}

// Preload implements pace.Storage: one read pass over the requested keys
// warms Badger's block cache ahead of a selection pass.
func (s *Store) Preload(itemIDs []string) error {
	return s.db.View(func(txn *badger.Txn) error {
		for _, id := range itemIDs {
			item, err := txn.Get(s.statsKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if err := item.Value(func([]byte) error { return nil }); err != nil {
				return err
			}
		}
		return nil
	})
}
