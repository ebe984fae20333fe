// Package bbolt implements ports.RenderCache using bbolt (embedded B+ tree).
// One bucket holds a JSON entry per repository root. Writes are
// transactional, so a crash mid-write cannot corrupt committed entries.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketRender = []byte("render")

// Cache is a render-output cache backed by a bbolt database file.
type Cache struct {
	db *bolt.DB
}

// entry is the stored JSON value for one repository root.
type entry struct {
	Fingerprint string    `json:"fingerprint"`
	Output      string    `json:"output"`
	Created     time.Time `json:"created"`
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Cache{db: db}, nil
}

// Load returns the cached output for root when fingerprint matches the stored
// entry. Missing or stale entries report ok=false.
func (c *Cache) Load(root, fingerprint string) (string, bool, error) {
	var raw []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRender)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get([]byte(root)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	if raw == nil {
		return "", false, nil
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return "", false, fmt.Errorf("unmarshal cache entry: %w", err)
	}
	if e.Fingerprint != fingerprint {
		return "", false, nil
	}
	return e.Output, true, nil
}

// Save stores rendered output for root, replacing any prior entry.
func (c *Cache) Save(root, fingerprint, output string) error {
	raw, err := json.Marshal(entry{
		Fingerprint: fingerprint,
		Output:      output,
		Created:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketRender)
		if err != nil {
			return err
		}
		return b.Put([]byte(root), raw)
	})
}

// Clear removes the entry for root. Clearing a nonexistent entry is a no-op.
func (c *Cache) Clear(root string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRender)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(root))
	})
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
