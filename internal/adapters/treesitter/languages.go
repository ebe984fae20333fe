package treesitter

// This file registers the compiled-in grammars. Each grammar is a Go module
// whose C source compiles into the binary via CGo.
//
// To compile in a new grammar:
// 1. go get github.com/tree-sitter/tree-sitter-{lang}@latest
// 2. Add import + Language() call in builtinGrammars()
// 3. Add a descriptor for the language in internal/domain/lang
//
// Languages without a compiled-in grammar load dynamically from
// .symtree/grammars via DynamicLoader.

import (
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// langPtr wraps a Language() call that returns unsafe.Pointer.
func langPtr(p unsafe.Pointer) *tree_sitter.Language {
	return tree_sitter.NewLanguage(p)
}

// builtinGrammars returns the grammars linked into the binary, keyed by
// grammar name (the typescript module exports two).
func builtinGrammars() map[string]*tree_sitter.Language {
	return map[string]*tree_sitter.Language{
		"python":     langPtr(ts_python.Language()),
		"javascript": langPtr(ts_javascript.Language()),
		"typescript": langPtr(ts_typescript.LanguageTypescript()),
		"tsx":        langPtr(ts_typescript.LanguageTSX()),
		"java":       langPtr(ts_java.Language()),
		"go":         langPtr(ts_go.Language()),
	}
}
