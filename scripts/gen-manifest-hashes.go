//go:build ignore

// gen-manifest-hashes walks a grammar directory, computes the SHA256 of each
// shared library, and writes the digests into manifest.json for the current
// platform. An existing manifest is merged so other platforms' digests and
// the version/repo_url metadata survive; unknown grammars get a bare entry.
//
// Usage: go run scripts/gen-manifest-hashes.go [--dir .symtree/grammars] [--out <dir>/manifest.json] [--platform linux-amd64]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/corey/symtree/internal/adapters/treesitter"
)

func main() {
	dir := flag.String("dir", filepath.Join(".symtree", "grammars"), "Directory containing grammar shared libraries")
	out := flag.String("out", "", "Output manifest path (default <dir>/manifest.json)")
	platform := flag.String("platform", treesitter.PlatformString(), "Platform key for the digests")
	flag.Parse()

	if *out == "" {
		*out = filepath.Join(*dir, "manifest.json")
	}

	manifest, err := treesitter.LoadManifest(*out)
	if err != nil {
		manifest = treesitter.BuiltinManifest()
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading directory %s: %v\n", *dir, err)
		os.Exit(1)
	}

	hashed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".so") && !strings.HasSuffix(name, ".dylib")) {
			continue
		}
		lang := strings.TrimSuffix(name, filepath.Ext(name))

		digest, err := treesitter.FileDigest(filepath.Join(*dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error hashing %s: %v\n", name, err)
			continue
		}

		info, ok := manifest.Grammars[lang]
		if !ok {
			info = treesitter.GrammarInfo{Name: lang}
		}
		if info.SHA256 == nil {
			info.SHA256 = make(treesitter.PlatHash)
		}
		info.SHA256[*platform] = digest
		manifest.Grammars[lang] = info
		hashed++
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error marshaling manifest: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %d grammars hashed for %s\n", *out, hashed, *platform)
}
