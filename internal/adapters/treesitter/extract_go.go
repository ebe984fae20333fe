package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/symtree/internal/domain/lang"
	"github.com/corey/symtree/internal/domain/model"
)

// goSignature renders "func Name(params) ret" and, for methods, puts the
// receiver list in the visibility slot: "func (s *Server) Name(params) ret".
// A parameter_list before the name is the receiver; the first one after is
// the parameters; anything after that before the body is the result.
func goSignature(n *tree_sitter.Node, source []byte, d *lang.Descriptor, cat model.SymbolCategory, name string) string {
	values := map[string]string{"name": name}
	if cat == model.CategoryClass {
		return lang.RenderTemplate(d.Template(cat), values)
	}

	seenName := false
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		kind := child.Kind()
		switch {
		case d.IsNameKind(kind) && nodeText(child, source) == name:
			seenName = true
		case kind == "type_parameters":
			values["name"] = name + nodeText(child, source)
		case kind == "parameter_list":
			if !seenName {
				values["visibility"] = nodeText(child, source)
			} else if values["params"] == "" {
				values["params"] = nodeText(child, source)
			} else {
				values["return_type"] = nodeText(child, source)
			}
		case kind == "block" || kind == "func":
		default:
			if seenName && values["params"] != "" && values["return_type"] == "" {
				values["return_type"] = nodeText(child, source)
			}
		}
	}
	return lang.RenderTemplate(d.Template(cat), values)
}
