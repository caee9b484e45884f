package badger

import (
	"errors"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"
)

// ErrNotFound is returned when a key has no cached entry (or its entry has
// expired).
var ErrNotFound = errors.New("cache: key not found")

// entry is the record badgerhold persists for every cache key.
type entry struct {
	Key       string `badgerholdKey:"Key"`
	Value     string
	UpdatedAt time.Time
}

// Store is a thread-safe get/put/delete cache over a Badger database. It
// has no at-most-once delivery guarantee: concurrent Put calls for the same
// key simply race to last-write-wins, which is all the rendered-body cache
// and the digest job's previous-root lookup require.
type Store struct {
	db     *DB
	logger arbor.ILogger
	ttl    time.Duration
}

// NewStore wraps an open Badger connection as a cache. A ttl of zero
// disables expiry.
func NewStore(db *DB, logger arbor.ILogger, ttl time.Duration) *Store {
	return &Store{db: db, logger: logger, ttl: ttl}
}

func normalizeKey(key string) string {
	return strings.TrimSpace(key)
}

// Get returns the cached value for key, or ErrNotFound if absent or expired.
func (s *Store) Get(key string) (string, error) {
	var e entry
	err := s.db.Store().Get(normalizeKey(key), &e)
	if err == badgerhold.ErrNotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	if s.ttl > 0 && time.Since(e.UpdatedAt) > s.ttl {
		_ = s.Delete(key)
		return "", ErrNotFound
	}

	return e.Value, nil
}

// Put inserts or overwrites the cached value for key.
func (s *Store) Put(key, value string) error {
	e := entry{Key: normalizeKey(key), Value: value, UpdatedAt: time.Now()}
	return s.db.Store().Upsert(e.Key, &e)
}

// Delete removes a cached value, if present.
func (s *Store) Delete(key string) error {
	err := s.db.Store().Delete(normalizeKey(key), &entry{})
	if err != nil && err != badgerhold.ErrNotFound {
		return err
	}
	return nil
}
