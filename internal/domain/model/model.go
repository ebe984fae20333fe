// Package model holds the data types produced by a repository scan:
// extracted symbols, per-file records, and the aggregated summary the
// renderer consumes.
package model

// SymbolCategory classifies an extracted declaration.
type SymbolCategory string

const (
	CategoryFunction  SymbolCategory = "function"
	CategoryMethod    SymbolCategory = "method"
	CategoryClass     SymbolCategory = "class"
	CategoryInterface SymbolCategory = "interface"
	CategoryOther     SymbolCategory = "other"
)

// Container reports whether this category can own member declarations.
// Functions nested under a container are classified as methods.
func (c SymbolCategory) Container() bool {
	return c == CategoryClass || c == CategoryInterface
}

// Symbol is one declaration extracted from a source file. Children hold
// declarations nested inside this one (methods of a class, inner classes).
type Symbol struct {
	Category  SymbolCategory `json:"category"`
	Name      string         `json:"name"`
	Signature string         `json:"signature,omitempty"`
	Line      int            `json:"line"`
	EndLine   int            `json:"end_line"`
	Children  []*Symbol      `json:"children,omitempty"`
}

// FileInfo describes one scanned file. Language is empty when no descriptor
// matched the path. Degraded is set when the file could not be read or its
// parse produced error nodes; files whose grammar is missing carry no
// symbols and surface through their language's stats instead.
type FileInfo struct {
	Path     string    `json:"path"`
	Language string    `json:"language,omitempty"`
	Lines    int       `json:"lines"`
	Symbols  []*Symbol `json:"symbols,omitempty"`
	Degraded bool      `json:"degraded,omitempty"`
}

// LanguageStat aggregates per-language counts and capability flags for the
// availability report and section ordering.
type LanguageStat struct {
	Files            int  `json:"files"`
	GrammarAvailable bool `json:"grammar_available"`
	SignatureSupport bool `json:"signature_support"`
}

// RepoSummary is the complete result of one scan. Files are ordered by
// sorted relative path. Partial is set when the run was cancelled before
// every file completed.
type RepoSummary struct {
	Name       string                  `json:"name"`
	Root       string                  `json:"root"`
	Files      []*FileInfo             `json:"files"`
	Languages  map[string]LanguageStat `json:"languages"`
	TotalFiles int                     `json:"total_files"`
	TotalLines int                     `json:"total_lines"`
	Partial    bool                    `json:"partial,omitempty"`
}

// SymbolCount returns the number of symbols in the summary, nested included.
func (rs *RepoSummary) SymbolCount() int {
	total := 0
	for _, f := range rs.Files {
		total += countSymbols(f.Symbols)
	}
	return total
}

func countSymbols(syms []*Symbol) int {
	n := len(syms)
	for _, s := range syms {
		n += countSymbols(s.Children)
	}
	return n
}
