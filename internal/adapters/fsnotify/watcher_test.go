package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func startWatcher(t *testing.T, dir string) (*Watcher, <-chan string) {
	t.Helper()
	w, err := NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	changed := make(chan string, 16)
	require.NoError(t, w.Watch(dir, func(path string) {
		changed <- path
	}))

	// Give the watcher time to start
	time.Sleep(50 * time.Millisecond)
	return w, changed
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.py")
	require.NoError(t, os.WriteFile(testFile, []byte("# original"), 0o644))

	_, changed := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(testFile, []byte("# modified"), 0o644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for file change")
	assert.Equal(t, testFile, path)
}

func TestWatcher_DetectsNewFile(t *testing.T) {
	dir := t.TempDir()
	_, changed := startWatcher(t, dir)

	newFile := filepath.Join(dir, "new_file.py")
	require.NoError(t, os.WriteFile(newFile, []byte("# new"), 0o644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for new file")
	assert.Equal(t, newFile, path)
}

func TestWatcher_DetectsDeletedFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "to_delete.py")
	require.NoError(t, os.WriteFile(testFile, []byte("# delete me"), 0o644))

	_, changed := startWatcher(t, dir)

	require.NoError(t, os.Remove(testFile))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for deleted file")
	assert.Equal(t, testFile, path)
}

func TestWatcher_IgnoresNoise(t *testing.T) {
	dir := t.TempDir()

	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0o755))
	nmDir := filepath.Join(dir, "node_modules")
	require.NoError(t, os.MkdirAll(nmDir, 0o755))
	stDir := filepath.Join(dir, ".symtree", "grammars")
	require.NoError(t, os.MkdirAll(stDir, 0o755))

	_, changed := startWatcher(t, dir)

	os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref"), 0o644)
	os.WriteFile(filepath.Join(nmDir, "package.json"), []byte("{}"), 0o644)
	os.WriteFile(filepath.Join(stDir, "python.so"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "test.swp"), []byte("x"), 0o644)

	_, ok := waitForCallback(changed, 500*time.Millisecond)
	assert.False(t, ok, "should not have received callback for ignored files")

	codeFile := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(codeFile, []byte("# code"), 0o644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for source file")
	assert.Equal(t, codeFile, path)
}

func TestWatcher_PicksUpNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	_, changed := startWatcher(t, dir)

	subdir := filepath.Join(dir, "pkg")
	require.NoError(t, os.Mkdir(subdir, 0o755))

	// Let the create event register the new directory with the watcher.
	time.Sleep(200 * time.Millisecond)
	drainChanges(changed)

	inner := filepath.Join(subdir, "inner.go")
	require.NoError(t, os.WriteFile(inner, []byte("package pkg\n"), 0o644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for file in new subdirectory")
	assert.Equal(t, inner, path)
}

func drainChanges(ch <-chan string) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func TestWatcher_CoalescesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "busy.py")
	require.NoError(t, os.WriteFile(testFile, []byte("# v0"), 0o644))

	_, changed := startWatcher(t, dir)

	const writes = 20
	for i := 0; i < writes; i++ {
		require.NoError(t, os.WriteFile(testFile, []byte("# burst"), 0o644))
	}

	_, ok := waitForCallback(changed, 2*time.Second)
	require.True(t, ok, "expected at least one callback for the burst")

	// Let any stragglers land, then count what the debounce let through.
	time.Sleep(200 * time.Millisecond)
	callbacks := 1
	for {
		if _, more := waitForCallback(changed, 50*time.Millisecond); !more {
			break
		}
		callbacks++
	}
	assert.Less(t, callbacks, writes, "debounce should coalesce a rapid burst")
}

func TestWatcher_StopCleanup(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)

	callCount := 0
	var mu sync.Mutex
	require.NoError(t, w.Watch(dir, func(path string) {
		mu.Lock()
		callCount++
		mu.Unlock()
	}))

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, w.Stop())

	mu.Lock()
	countAfterStop := callCount
	mu.Unlock()

	os.WriteFile(filepath.Join(dir, "after_stop.py"), []byte("# nope"), 0o644)
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	countAfterWrite := callCount
	mu.Unlock()

	assert.Equal(t, countAfterStop, countAfterWrite, "callbacks fired after Stop()")

	// Double-stop stays safe
	assert.NoError(t, w.Stop())
}
