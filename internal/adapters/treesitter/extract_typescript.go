package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/symtree/internal/domain/lang"
	"github.com/corey/symtree/internal/domain/model"
)

// typescriptSignature renders functions and methods with their parameter
// list and return annotation. The grammar's type_annotation text already
// carries the leading colon, so "function {name}{params}{return_type}"
// yields "function f(x: number): string". Shared by typescript and tsx.
func typescriptSignature(n *tree_sitter.Node, source []byte, d *lang.Descriptor, cat model.SymbolCategory, name string) string {
	values := map[string]string{"name": name}
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "formal_parameters":
			values["params"] = nodeText(child, source)
		case "type_annotation":
			values["return_type"] = nodeText(child, source)
		case "accessibility_modifier":
			values["visibility"] = nodeText(child, source)
		case "type_parameters":
			values["name"] = name + nodeText(child, source)
		}
	}
	return lang.RenderTemplate(d.Template(cat), values)
}
