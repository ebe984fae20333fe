// symtree prints a repository's declaration tree, grouped by language.
// Single binary; grammars for the core languages are compiled in, others
// load dynamically from .symtree/grammars.
package main

import (
	"os"

	"github.com/corey/symtree/cmd/symtree/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
