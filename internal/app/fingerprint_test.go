package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_StableForUnchangedSet(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.py", "x = 1\n")
	writeFixture(t, dir, "b/c.py", "y = 2\n")

	paths := []string{"a.py", "b/c.py"}
	first := Fingerprint(dir, paths)
	second := Fingerprint(dir, paths)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestFingerprint_ChangesOnSize(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.py", "x = 1\n")

	before := Fingerprint(dir, []string{"a.py"})
	writeFixture(t, dir, "a.py", "x = 1\ny = 2\n")
	after := Fingerprint(dir, []string{"a.py"})

	assert.NotEqual(t, before, after)
}

func TestFingerprint_ChangesOnMtime(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.py", "x = 1\n")
	path := filepath.Join(dir, "a.py")

	before := Fingerprint(dir, []string{"a.py"})

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))
	after := Fingerprint(dir, []string{"a.py"})

	assert.NotEqual(t, before, after)
}

func TestFingerprint_ChangesOnFileSet(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.py", "x = 1\n")
	writeFixture(t, dir, "b.py", "y = 2\n")

	one := Fingerprint(dir, []string{"a.py"})
	two := Fingerprint(dir, []string{"a.py", "b.py"})

	assert.NotEqual(t, one, two)
}

func TestFingerprint_SkipsVanishedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.py", "x = 1\n")

	with := Fingerprint(dir, []string{"a.py", "gone.py"})
	without := Fingerprint(dir, []string{"a.py"})

	assert.Equal(t, without, with)
}
