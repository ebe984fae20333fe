package ports

// Watcher monitors a repository for file changes and triggers a rescan.
// The adapter (fsnotify) must filter out non-source noise (.git,
// node_modules, editor temp files) before invoking onChange. Only one Watch
// call should be active at a time.
type Watcher interface {
	// Watch starts monitoring root recursively. onChange is called with the
	// absolute path of each changed file, possibly coalesced; the callback
	// may be invoked from any goroutine. Returns an error if the directory
	// doesn't exist or permissions are insufficient.
	Watch(root string, onChange func(path string)) error

	// Stop ends monitoring and releases all resources. A callback already in
	// flight may still complete. Safe to call multiple times.
	Stop() error
}
