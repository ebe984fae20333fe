package treesitter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// DynamicLoader loads tree-sitter grammars from shared libraries (.so on
// Linux, .dylib on macOS) using purego. Grammars not compiled into the
// binary can be dropped into a search path and picked up at runtime.
// Loaded languages are cached per grammar name.
type DynamicLoader struct {
	searchPaths []string
	mu          sync.Mutex
	loaded      map[string]*tree_sitter.Language
	handles     []uintptr
}

// NewDynamicLoader creates a loader that searches the given directories for
// grammar libraries. Directories are searched in order; first match wins.
func NewDynamicLoader(searchPaths []string) *DynamicLoader {
	return &DynamicLoader{
		searchPaths: searchPaths,
		loaded:      make(map[string]*tree_sitter.Language),
	}
}

// DefaultGrammarPaths returns the standard grammar library locations:
// project-local .symtree/grammars first, then ~/.symtree/grammars.
func DefaultGrammarPaths(root string) []string {
	var paths []string
	if root != "" {
		paths = append(paths, filepath.Join(root, ".symtree", "grammars"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".symtree", "grammars"))
	}
	return paths
}

// LibExtension returns the shared library extension for this platform.
func LibExtension() string {
	if runtime.GOOS == "darwin" {
		return ".dylib"
	}
	return ".so"
}

// libFileOverrides maps grammar names to library base names where one file
// carries several grammars (the typescript library also exports tsx).
var libFileOverrides = map[string]string{
	"tsx": "typescript",
}

// LibBaseName returns the expected library base name for a grammar. Files
// follow the convention <base><ext>, e.g. python.so.
func LibBaseName(grammar string) string {
	if base, ok := libFileOverrides[grammar]; ok {
		return base
	}
	return grammar
}

// CSymbolName returns the exported C constructor for a grammar,
// tree_sitter_<name> with dashes folded to underscores.
func CSymbolName(grammar string) string {
	return "tree_sitter_" + strings.ReplaceAll(grammar, "-", "_")
}

// Load resolves a grammar shared library and returns its language. Results
// are cached; repeat calls for the same grammar return the cached value.
func (dl *DynamicLoader) Load(grammar string) (*tree_sitter.Language, error) {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if cached, ok := dl.loaded[grammar]; ok {
		return cached, nil
	}

	libPath := dl.lookupPath(grammar)
	if libPath == "" {
		return nil, fmt.Errorf("grammar %q: shared library not found in search paths", grammar)
	}

	handle, err := purego.Dlopen(libPath, purego.RTLD_LAZY)
	if err != nil {
		return nil, fmt.Errorf("grammar %q: dlopen %s: %w", grammar, libPath, err)
	}
	dl.handles = append(dl.handles, handle)

	symName := CSymbolName(grammar)
	var langFunc func() uintptr
	purego.RegisterLibFunc(&langFunc, handle, symName)

	ptr := langFunc()
	if ptr == 0 {
		return nil, fmt.Errorf("grammar %q: %s() returned null", grammar, symName)
	}

	// Convert the uintptr from C to unsafe.Pointer without tripping go vet's
	// unsafeptr check. The value is a static TSLanguage* owned by the .so,
	// never a Go pointer the GC could move.
	language := tree_sitter.NewLanguage(*(*unsafe.Pointer)(unsafe.Pointer(&ptr)))
	dl.loaded[grammar] = language
	return language, nil
}

// LibraryPath returns the resolved library path for a grammar, or "" when no
// search path contains it.
func (dl *DynamicLoader) LibraryPath(grammar string) string {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	return dl.lookupPath(grammar)
}

func (dl *DynamicLoader) lookupPath(grammar string) string {
	ext := LibExtension()
	base := LibBaseName(grammar)
	for _, dir := range dl.searchPaths {
		candidate := filepath.Join(dir, base+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Installed returns the grammar names present as shared libraries across the
// search paths, sorted and deduplicated.
func (dl *DynamicLoader) Installed() []string {
	ext := LibExtension()
	seen := make(map[string]bool)
	for _, dir := range dl.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
				continue
			}
			seen[strings.TrimSuffix(e.Name(), ext)] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SearchPaths returns the configured search directories.
func (dl *DynamicLoader) SearchPaths() []string {
	return dl.searchPaths
}

// Close drops the language cache and dlopen handles.
func (dl *DynamicLoader) Close() {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.handles = nil
	dl.loaded = make(map[string]*tree_sitter.Language)
}
