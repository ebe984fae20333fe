package ports

import (
	"context"
	"fmt"

	"github.com/corey/symtree/internal/domain/model"
)

// SymbolSource extracts declaration symbols from source files. The concrete
// implementation (tree-sitter) lives in internal/adapters/treesitter. A file
// whose grammar is unavailable is not an error at this level; callers decide
// whether to degrade or report.
type SymbolSource interface {
	// GrammarAvailable reports whether the language's grammar is already
	// loaded, without attempting provisioning.
	GrammarAvailable(language string) bool

	// EnsureGrammar makes the language's grammar available, performing at
	// most one provisioning attempt per language per process. Repeat calls
	// return the recorded outcome. Failures are *ProvisionError.
	EnsureGrammar(ctx context.Context, language string) error

	// SignatureSupport reports whether a signature extractor is registered
	// for the language.
	SignatureSupport(language string) bool

	// Extract parses source with the language's grammar and returns the
	// nested symbols. A missing grammar returns a *ProvisionError; a parse
	// whose tree contains error nodes still returns symbols with
	// Degraded set.
	Extract(ctx context.Context, language string, source []byte) (*ExtractResult, error)
}

// ExtractResult is the outcome of extracting one file. Warnings carries
// non-fatal per-symbol degradations (a signature extractor failed and the
// symbol fell back to its bare name).
type ExtractResult struct {
	Symbols  []*model.Symbol
	Degraded bool
	Warnings []string
}

// ProvisionError means a language's grammar could not be made available.
type ProvisionError struct {
	Language string
	Reason   string
	Err      error
}

func (e *ProvisionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("grammar %s: %s: %v", e.Language, e.Reason, e.Err)
	}
	return fmt.Sprintf("grammar %s: %s", e.Language, e.Reason)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// ParseError means the parser failed outright for a file (distinct from a
// tree that parsed with embedded error nodes).
type ParseError struct {
	Language string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Language, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
