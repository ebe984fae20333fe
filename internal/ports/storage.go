// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// RenderCache persists rendered scan output keyed by repository root. Entries
// carry the fingerprint of the file set they were built from; a lookup with a
// different fingerprint is a miss. Only rendered text is cached, never the
// symbol model.
//
// Crash safety: Save must be transactional. A crash mid-write must not
// corrupt previously committed entries.
type RenderCache interface {
	// Load returns the cached output for root when its fingerprint matches.
	// A missing entry or a stale fingerprint returns ok=false, not an error.
	Load(root, fingerprint string) (output string, ok bool, err error)

	// Save stores rendered output for root, replacing any prior entry.
	Save(root, fingerprint, output string) error

	// Clear removes the entry for root. Idempotent: clearing a nonexistent
	// entry is not an error.
	Clear(root string) error

	// Close releases the underlying database. Safe to call once.
	Close() error
}
