package treesitter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
)

// PlatformString returns the OS-arch key used in manifest digests,
// e.g. "linux-amd64", "darwin-arm64".
func PlatformString() string {
	return runtime.GOOS + "-" + runtime.GOARCH
}

// GrammarInfo describes one dynamically loadable grammar.
type GrammarInfo struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	RepoURL string   `json:"repo_url"`
	SHA256  PlatHash `json:"sha256,omitempty"`
}

// PlatHash maps platform (e.g. "linux-amd64") to SHA256 hex digest of the
// built shared library.
type PlatHash map[string]string

// Manifest lists the grammars available for dynamic loading. A manifest.json
// sits next to the shared libraries in a grammar directory; the builtin
// manifest covers the languages with descriptors but no compiled-in grammar.
type Manifest struct {
	Version  int                    `json:"version"`
	Grammars map[string]GrammarInfo `json:"grammars"`
}

// LoadManifest reads a manifest from a JSON file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Names returns the manifest's grammar names, sorted.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Grammars))
	for name := range m.Grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Verify compares a shared library on disk against the manifest digest for
// the platform. An empty recorded digest verifies trivially.
func (m *Manifest) Verify(grammar, platform, path string) error {
	info, ok := m.Grammars[grammar]
	if !ok {
		return fmt.Errorf("grammar %q not in manifest", grammar)
	}
	want := info.SHA256[platform]
	if want == "" {
		return nil
	}
	got, err := FileDigest(path)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("grammar %q: checksum mismatch: want %s, got %s", grammar, want, got)
	}
	return nil
}

// FileDigest returns the SHA256 hex digest of a file.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// BuiltinManifest covers the descriptor languages whose grammars are not
// compiled in. Embedded so `symtree grammars` works without network access.
func BuiltinManifest() *Manifest {
	return &Manifest{
		Version: 1,
		Grammars: map[string]GrammarInfo{
			"ruby":    {Name: "ruby", Version: "0.23.1", RepoURL: "https://github.com/tree-sitter/tree-sitter-ruby"},
			"rust":    {Name: "rust", Version: "0.24.0", RepoURL: "https://github.com/tree-sitter/tree-sitter-rust"},
			"c":       {Name: "c", Version: "0.24.1", RepoURL: "https://github.com/tree-sitter/tree-sitter-c"},
			"cpp":     {Name: "cpp", Version: "0.23.4", RepoURL: "https://github.com/tree-sitter/tree-sitter-cpp"},
			"c_sharp": {Name: "c_sharp", Version: "0.23.1", RepoURL: "https://github.com/tree-sitter/tree-sitter-c-sharp"},
			"php":     {Name: "php", Version: "0.24.2", RepoURL: "https://github.com/tree-sitter/tree-sitter-php"},
			"kotlin":  {Name: "kotlin", Version: "1.1.0", RepoURL: "https://github.com/tree-sitter-grammars/tree-sitter-kotlin"},
			"bash":    {Name: "bash", Version: "0.25.1", RepoURL: "https://github.com/tree-sitter/tree-sitter-bash"},
		},
	}
}
