package treesitter

import (
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/symtree/internal/domain/lang"
	"github.com/corey/symtree/internal/domain/model"
)

// extractor renders one declaration's signature. Implementations read the
// node's direct children (parameters, return type, modifiers) and fill the
// descriptor's template for the category.
type extractor func(n *tree_sitter.Node, source []byte, d *lang.Descriptor, cat model.SymbolCategory, name string) string

// extractors maps language names to signature extractors. Languages absent
// here still produce symbols, just without signatures.
var extractors = map[string]extractor{
	"python":     pythonSignature,
	"typescript": typescriptSignature,
	"tsx":        typescriptSignature,
	"java":       javaSignature,
	"go":         goSignature,
}

func extractorFor(language string) extractor {
	return extractors[language]
}

// SignatureLanguages returns the languages with a registered extractor,
// sorted.
func SignatureLanguages() []string {
	names := make([]string, 0, len(extractors))
	for name := range extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
