package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Fingerprint hashes the discovered file set's (path, size, mtime) triples.
// Paths must be sorted; the digest changes whenever a file is added, removed,
// touched, or resized, which is what invalidates cached render output.
// Files that vanish between discovery and hashing are skipped.
func Fingerprint(root string, paths []string) string {
	h := sha256.New()
	for _, p := range paths {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(p)))
		if err != nil {
			continue
		}
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", p, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil))
}
