package app

import (
	"sort"

	"github.com/corey/symtree/internal/domain/model"
	"github.com/corey/symtree/internal/ports"
)

// Report maps each detected language to its file count and capability flags
// for the run. Unrecognized files carry no language and are not listed here;
// they still count toward the summary totals.
type Report map[string]model.LanguageStat

// BuildReport compiles per-language stats for a set of classified files,
// querying the symbol source for current grammar and signature capabilities.
func BuildReport(src ports.SymbolSource, fileLangs []string) Report {
	r := make(Report)
	for _, language := range fileLangs {
		if language == "" {
			continue
		}
		s := r[language]
		s.Files++
		r[language] = s
	}
	for language, s := range r {
		s.GrammarAvailable = src.GrammarAvailable(language)
		s.SignatureSupport = src.SignatureSupport(language)
		r[language] = s
	}
	return r
}

// Languages returns the report's language names, sorted.
func (r Report) Languages() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
