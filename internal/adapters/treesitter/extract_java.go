package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/symtree/internal/domain/lang"
	"github.com/corey/symtree/internal/domain/model"
)

// javaReturnKinds are the node kinds a method's return type can take.
var javaReturnKinds = map[string]bool{
	"void_type":              true,
	"integral_type":          true,
	"floating_point_type":    true,
	"boolean_type":           true,
	"type_identifier":        true,
	"scoped_type_identifier": true,
	"generic_type":           true,
	"array_type":             true,
}

// javaSignature renders "visibility ReturnType name(params)" for methods and
// "visibility class Name" for types. Constructors have no return type node,
// so the template's return slot collapses away.
func javaSignature(n *tree_sitter.Node, source []byte, d *lang.Descriptor, cat model.SymbolCategory, name string) string {
	values := map[string]string{"name": name}
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		kind := child.Kind()
		switch {
		case kind == "modifiers":
			values["visibility"] = javaVisibility(child)
		case kind == "formal_parameters":
			values["params"] = nodeText(child, source)
		case javaReturnKinds[kind] && values["return_type"] == "":
			values["return_type"] = nodeText(child, source)
		}
	}
	return lang.RenderTemplate(d.Template(cat), values)
}

// javaVisibility picks the access keyword out of a modifiers node, ignoring
// annotations and non-access modifiers.
func javaVisibility(modifiers *tree_sitter.Node) string {
	for i := uint(0); i < uint(modifiers.ChildCount()); i++ {
		child := modifiers.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "public", "private", "protected":
			return child.Kind()
		}
	}
	return ""
}
