// Package cache provides the thread-safe get/put cache spec.md §5 requires
// for rendered thread bodies and the Merkle root of the last computed
// digest per list/month. It has no at-most-once guarantee: a cache miss
// simply falls back to recomputation.
package cache

import (
	"fmt"

	"github.com/mailarchive/beautifier/internal/cache/badger"
	"github.com/mailarchive/beautifier/internal/common"
	"github.com/ternarybob/arbor"
)

// Cache wraps a Badger-backed store with the two key namespaces this
// repository needs: rendered message bodies and per-list/month digest
// roots.
type Cache struct {
	store *badger.Store
	db    *badger.DB
}

// Open opens the cache database at the path named in config.
func Open(logger arbor.ILogger, config *common.BadgerConfig) (*Cache, error) {
	db, err := badger.Open(logger, config)
	if err != nil {
		return nil, err
	}
	return &Cache{
		store: badger.NewStore(db, logger, config.TTL),
		db:    db,
	}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

func renderedBodyKey(messageID string) string {
	return "rendered:" + messageID
}

func digestRootKey(list, yearMonth string) string {
	return fmt.Sprintf("digest-root:%s:%s", list, yearMonth)
}

// GetRenderedBody returns the cached HTML rendering of a normalized message
// body, if present.
func (c *Cache) GetRenderedBody(messageID string) (string, bool, error) {
	html, err := c.store.Get(renderedBodyKey(messageID))
	if err == badger.ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return html, true, nil
}

// PutRenderedBody caches the HTML rendering of a normalized message body.
func (c *Cache) PutRenderedBody(messageID, html string) error {
	return c.store.Put(renderedBodyKey(messageID), html)
}

// GetDigestRoot returns the Merkle root hash (lowercase hex) recorded for
// the previous digest run of list/yearMonth, if any.
func (c *Cache) GetDigestRoot(list, yearMonth string) (string, bool, error) {
	hash, err := c.store.Get(digestRootKey(list, yearMonth))
	if err == badger.ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return hash, true, nil
}

// PutDigestRoot records the Merkle root hash for list/yearMonth so the next
// scheduled run can detect whether the thread structure changed.
func (c *Cache) PutDigestRoot(list, yearMonth, hash string) error {
	return c.store.Put(digestRootKey(list, yearMonth), hash)
}
