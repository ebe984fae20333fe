package treesitter

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/symtree/internal/domain/lang"
	"github.com/corey/symtree/internal/domain/model"
)

// maxNameDepth bounds the search for a declaration's name node. Grammars put
// the name at most one wrapper below the declaration (go type_spec,
// c function_declarator); anything deeper is body content.
const maxNameDepth = 2

// walkContext carries one file's walk state.
type walkContext struct {
	source    []byte
	desc      *lang.Descriptor
	extractor extractor
	warnings  []string
}

// walkTree extracts the nested symbol forest from a parsed tree using the
// language's descriptor. Declarations nest under their innermost matched
// ancestor; a declaration is never promoted to a sibling of its container.
// The second result lists the symbols whose extractor failed and fell back
// to the bare name.
func walkTree(root *tree_sitter.Node, source []byte, desc *lang.Descriptor, ext extractor) ([]*model.Symbol, []string) {
	ctx := &walkContext{source: source, desc: desc, extractor: ext}
	var out []*model.Symbol
	ctx.walk(root, nil, &out)
	return out, ctx.warnings
}

// walk visits n's children, appending matched declarations to out. ancestors
// holds the categories of the matched declarations enclosing this point,
// outermost first.
func (ctx *walkContext) walk(n *tree_sitter.Node, ancestors []model.SymbolCategory, out *[]*model.Symbol) {
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		cat, matched := ctx.desc.Classify(child.Kind(), ancestors)
		if !matched {
			ctx.walk(child, ancestors, out)
			continue
		}
		sym := ctx.symbolFor(child, cat)
		if sym == nil {
			// Nameless declaration: stay transparent and keep walking.
			ctx.walk(child, ancestors, out)
			continue
		}
		ctx.walk(child, append(ancestors, cat), &sym.Children)
		*out = append(*out, sym)
	}
}

func (ctx *walkContext) symbolFor(n *tree_sitter.Node, cat model.SymbolCategory) *model.Symbol {
	name := ctx.declarationName(n)
	if name == "" {
		return nil
	}
	return &model.Symbol{
		Category:  cat,
		Name:      name,
		Signature: ctx.signature(n, cat, name),
		Line:      int(n.StartPosition().Row + 1),
		EndLine:   int(n.EndPosition().Row + 1),
	}
}

// declarationName finds the shallowest descendant carrying the declaration's
// name, breadth-first so a class's own type_identifier wins over anything in
// its base clause. Subtrees that are themselves declarations are skipped so a
// nested symbol's name is never claimed.
func (ctx *walkContext) declarationName(n *tree_sitter.Node) string {
	level := childNodes(n)
	for depth := 1; depth <= maxNameDepth && len(level) > 0; depth++ {
		var next []*tree_sitter.Node
		for _, node := range level {
			if ctx.desc.IsNameKind(node.Kind()) {
				return nodeText(node, ctx.source)
			}
			if _, nested := ctx.desc.Classify(node.Kind(), nil); nested {
				continue
			}
			next = append(next, childNodes(node)...)
		}
		level = next
	}
	return ""
}

// signature renders the declaration's signature through the language
// extractor. A panicking extractor degrades to the bare name for this symbol
// only; languages without an extractor yield empty signatures.
func (ctx *walkContext) signature(n *tree_sitter.Node, cat model.SymbolCategory, name string) (sig string) {
	if ctx.extractor == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			ctx.warnings = append(ctx.warnings, fmt.Sprintf("signature for %s: %v", name, r))
			sig = name
		}
	}()
	return ctx.extractor(n, ctx.source, ctx.desc, cat, name)
}

func childNodes(n *tree_sitter.Node) []*tree_sitter.Node {
	nodes := make([]*tree_sitter.Node, 0, n.ChildCount())
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

func nodeText(n *tree_sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}
