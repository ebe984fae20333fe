package bbolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_SaveLoad(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Save("/repo", "fp1", "rendered output"))

	out, ok, err := c.Load("/repo", "fp1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "rendered output", out)
}

func TestCache_StaleFingerprintMisses(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Save("/repo", "fp1", "old output"))

	_, ok, err := c.Load("/repo", "fp2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_MissingEntry(t *testing.T) {
	c := openTestCache(t)

	_, ok, err := c.Load("/never-saved", "fp")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_SaveReplaces(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Save("/repo", "fp1", "first"))
	require.NoError(t, c.Save("/repo", "fp2", "second"))

	_, ok, err := c.Load("/repo", "fp1")
	require.NoError(t, err)
	assert.False(t, ok, "old fingerprint no longer matches")

	out, ok, err := c.Load("/repo", "fp2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", out)
}

func TestCache_Clear(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Save("/repo", "fp", "output"))
	require.NoError(t, c.Clear("/repo"))

	_, ok, err := c.Load("/repo", "fp")
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing again, or clearing an unknown root, stays silent.
	require.NoError(t, c.Clear("/repo"))
	require.NoError(t, c.Clear("/other"))
}

func TestCache_RootsIsolated(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Save("/a", "fp", "for a"))
	require.NoError(t, c.Save("/b", "fp", "for b"))
	require.NoError(t, c.Clear("/a"))

	out, ok, err := c.Load("/b", "fp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "for b", out)
}

func TestCache_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c.Save("/repo", "fp", "survives"))
	require.NoError(t, c.Close())

	c2, err := Open(path)
	require.NoError(t, err)
	defer c2.Close()

	out, ok, err := c2.Load("/repo", "fp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "survives", out)
}
