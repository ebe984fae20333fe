package treesitter

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformString(t *testing.T) {
	p := PlatformString()
	assert.Equal(t, runtime.GOOS+"-"+runtime.GOARCH, p)
}

func TestFileDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	digest, err := FileDigest(path)
	require.NoError(t, err)
	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", digest)
}

func TestFileDigest_Missing(t *testing.T) {
	_, err := FileDigest(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestManifestVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ruby.so")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	m := &Manifest{
		Version: 1,
		Grammars: map[string]GrammarInfo{
			"ruby": {
				Name: "ruby",
				SHA256: PlatHash{
					"linux-amd64": "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
				},
			},
		},
	}

	assert.NoError(t, m.Verify("ruby", "linux-amd64", path))

	err := m.Verify("ruby", "linux-amd64", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("tampered"), 0o644))
	err = m.Verify("ruby", "linux-amd64", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestManifestVerify_EmptyDigestPasses(t *testing.T) {
	m := &Manifest{Grammars: map[string]GrammarInfo{"ruby": {Name: "ruby"}}}
	// No recorded digest for the platform means nothing to compare.
	assert.NoError(t, m.Verify("ruby", "linux-amd64", "/does/not/exist"))
}

func TestManifestVerify_UnknownGrammar(t *testing.T) {
	m := &Manifest{Grammars: map[string]GrammarInfo{}}
	err := m.Verify("zig", "linux-amd64", "/tmp/zig.so")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in manifest")
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	data := `{"version":1,"grammars":{"rust":{"name":"rust","version":"0.24.0","repo_url":"https://github.com/tree-sitter/tree-sitter-rust"}}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Version)
	assert.Equal(t, "0.24.0", m.Grammars["rust"].Version)
}

func TestLoadManifest_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := LoadManifest(path)
	assert.Error(t, err)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestBuiltinManifest(t *testing.T) {
	m := BuiltinManifest()
	names := m.Names()
	assert.Contains(t, names, "ruby")
	assert.Contains(t, names, "c_sharp")
	assert.NotContains(t, names, "python")

	for _, name := range names {
		info := m.Grammars[name]
		assert.NotEmpty(t, info.RepoURL, name)
		assert.NotEmpty(t, info.Version, name)
	}
}
