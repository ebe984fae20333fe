package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/symtree/internal/domain/lang"
	"github.com/corey/symtree/internal/domain/model"
)

// pythonSignature renders "def name(params) -> ret" from a
// function_definition's direct children. The return annotation is the type
// node after the -> token; classes render as "class name".
func pythonSignature(n *tree_sitter.Node, source []byte, d *lang.Descriptor, cat model.SymbolCategory, name string) string {
	values := map[string]string{"name": name}
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "parameters":
			values["params"] = nodeText(child, source)
		case "type":
			values["return_type"] = "-> " + nodeText(child, source)
		}
	}
	return lang.RenderTemplate(d.Template(cat), values)
}
