package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/symtree/internal/adapters/treesitter"
)

var grammarsCmd = &cobra.Command{
	Use:   "grammars",
	Short: "Show dynamically loadable grammar status",
	Long: "Shows which grammar shared libraries are installed, where they were found,\n" +
		"and verifies their checksums against the grammar manifest. Grammars compiled\n" +
		"into the binary are not listed here.",
	RunE: runGrammars,
}

func init() {
	grammarsCmd.Flags().String("write-script", "", "Write a grammar build script to this path and exit")
}

func runGrammars(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	root := targetDir(nil)

	paths := treesitter.DefaultGrammarPaths(root)
	if cfg.GrammarDir != "" {
		paths = append([]string{cfg.GrammarDir}, paths...)
	}
	loader := treesitter.NewDynamicLoader(paths)

	manifest := loadGrammarManifest(paths)

	if scriptPath, _ := cmd.Flags().GetString("write-script"); scriptPath != "" {
		if err := writeGrammarScript(scriptPath, manifest); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", scriptPath)
		return nil
	}

	platform := treesitter.PlatformString()

	fmt.Println("Search paths:")
	for _, p := range paths {
		fmt.Printf("  %s\n", p)
	}
	fmt.Println()

	fmt.Printf("%-10s %-10s %-12s %s\n", "GRAMMAR", "VERSION", "STATUS", "LOCATION")
	for _, name := range manifest.Names() {
		info := manifest.Grammars[name]

		libPath := loader.LibraryPath(name)
		if libPath == "" {
			fmt.Printf("%-10s %-10s %-12s %s\n", name, info.Version, "missing", info.RepoURL)
			continue
		}

		status := "installed"
		if err := manifest.Verify(name, platform, libPath); err != nil {
			status = "corrupt"
		}
		fmt.Printf("%-10s %-10s %-12s %s\n", name, info.Version, status, libPath)
	}

	// Libraries present on disk but absent from the manifest still load.
	known := make(map[string]bool, len(manifest.Grammars))
	for name := range manifest.Grammars {
		known[name] = true
	}
	for _, name := range loader.Installed() {
		if !known[name] {
			fmt.Printf("%-10s %-10s %-12s %s\n", name, "-", "unmanaged", loader.LibraryPath(name))
		}
	}
	return nil
}

// loadGrammarManifest prefers a manifest.json next to the grammar libraries,
// falling back to the embedded manifest.
func loadGrammarManifest(searchPaths []string) *treesitter.Manifest {
	for _, dir := range searchPaths {
		if m, err := treesitter.LoadManifest(filepath.Join(dir, "manifest.json")); err == nil {
			return m
		}
	}
	return treesitter.BuiltinManifest()
}

// grammarSubdirs maps grammars whose repository nests the parser source under
// a subdirectory (multi-grammar repos).
var grammarSubdirs = map[string]string{
	"php": "php",
}

// writeGrammarScript emits a shell script that clones each manifest grammar at
// its pinned tag and compiles the shared library into a grammar directory.
func writeGrammarScript(path string, manifest *treesitter.Manifest) error {
	var b strings.Builder
	b.WriteString(`#!/bin/sh
# Builds tree-sitter grammar shared libraries for symtree.
# Usage: build-grammars.sh [dest-dir]   (default .symtree/grammars)
set -e

DEST="${1:-.symtree/grammars}"
mkdir -p "$DEST"
WORK="$(mktemp -d)"
trap 'rm -rf "$WORK"' EXIT

build() {
	name="$1"; repo="$2"; ref="$3"; sub="$4"
	echo "Building $name ($ref)..."
	git clone --quiet --depth 1 --branch "v$ref" "$repo" "$WORK/$name"
	src="$WORK/$name/src"
	if [ -n "$sub" ]; then
		src="$WORK/$name/$sub/src"
	fi
	if [ -f "$src/scanner.cc" ]; then
		c++ -shared -fPIC -O2 -I "$src" -o "$DEST/$name.so" "$src/parser.c" "$src/scanner.cc"
	elif [ -f "$src/scanner.c" ]; then
		cc -shared -fPIC -O2 -I "$src" -o "$DEST/$name.so" "$src/parser.c" "$src/scanner.c"
	else
		cc -shared -fPIC -O2 -I "$src" -o "$DEST/$name.so" "$src/parser.c"
	fi
}

`)
	for _, name := range manifest.Names() {
		info := manifest.Grammars[name]
		if info.RepoURL == "" || info.Version == "" {
			continue
		}
		fmt.Fprintf(&b, "build %s %s %s %s\n", name, info.RepoURL, info.Version, grammarSubdirs[name])
	}
	b.WriteString("\necho \"Done. Libraries in $DEST\"\n")

	return os.WriteFile(path, []byte(b.String()), 0o755)
}
