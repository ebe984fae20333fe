// Package render serializes a RepoSummary as an indented text tree or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/corey/symtree/internal/domain/model"
)

// Options tunes text rendering.
type Options struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// LineNumbers appends a bracketed source line to each symbol.
	LineNumbers bool
}

// DefaultOptions is two-space indentation with line markers.
func DefaultOptions() Options {
	return Options{Indent: 2, LineNumbers: true}
}

func (o Options) normalize() Options {
	if o.Indent <= 0 {
		o.Indent = 2
	}
	return o
}

// Tree writes the language-grouped symbol tree: a repository header,
// per-language support lines, then one section per language. Sections order
// signature-supported languages first by descending file count, then
// grammar-only languages, then unrecognized files.
func Tree(w io.Writer, s *model.RepoSummary, opts Options) error {
	opts = opts.normalize()
	var b strings.Builder

	writeHeader(&b, s)
	writeSupport(&b, s.Languages)

	for _, sec := range sections(s) {
		writeSection(&b, sec, opts)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Structure writes the directory view: files under their directories, symbols
// under their files. Within a directory, files come before subdirectories.
func Structure(w io.Writer, s *model.RepoSummary, opts Options) error {
	opts = opts.normalize()
	var b strings.Builder

	writeHeader(&b, s)

	byPath := make(map[string]*model.FileInfo, len(s.Files))
	paths := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		byPath[f.Path] = f
		paths = append(paths, f.Path)
	}
	writeDir(&b, model.BuildDirTree(s.Name, paths), "", 0, byPath, opts)

	_, err := io.WriteString(w, b.String())
	return err
}

// Report writes per-language availability lines, one per language, sorted.
func Report(w io.Writer, stats map[string]model.LanguageStat) error {
	var b strings.Builder
	writeSupport(&b, stats)
	_, err := io.WriteString(w, b.String())
	return err
}

// JSON writes the summary as indented JSON.
func JSON(w io.Writer, s *model.RepoSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func writeHeader(b *strings.Builder, s *model.RepoSummary) {
	fmt.Fprintf(b, "Repository: %s\n", s.Name)
	fmt.Fprintf(b, "Total files: %d, Total lines: %d", s.TotalFiles, s.TotalLines)
	if s.Partial {
		b.WriteString(" (partial scan)")
	}
	b.WriteString("\n\n")
}

func writeSupport(b *strings.Builder, stats map[string]model.LanguageStat) {
	if len(stats) == 0 {
		return
	}
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("Language Support:\n")
	for _, name := range names {
		st := stats[name]
		fmt.Fprintf(b, "  %s: %d files (%s)\n", name, st.Files, supportLabel(st))
	}
	b.WriteString("\n")
}

func supportLabel(st model.LanguageStat) string {
	switch {
	case st.SignatureSupport:
		return "signatures"
	case st.GrammarAvailable:
		return "symbols only"
	default:
		return "grammar unavailable"
	}
}

// section is one language group of the tree view. An empty language means
// files no descriptor recognized.
type section struct {
	language string
	files    []*model.FileInfo
	stat     model.LanguageStat
}

func sections(s *model.RepoSummary) []section {
	byLang := make(map[string][]*model.FileInfo)
	for _, f := range s.Files {
		byLang[f.Language] = append(byLang[f.Language], f)
	}

	var withSig, withoutSig []section
	var unrecognized *section
	for language, files := range byLang {
		if language == "" {
			unrecognized = &section{files: files}
			continue
		}
		sec := section{language: language, files: files, stat: s.Languages[language]}
		if sec.stat.SignatureSupport {
			withSig = append(withSig, sec)
		} else {
			withoutSig = append(withoutSig, sec)
		}
	}

	byCount := func(list []section) {
		sort.Slice(list, func(i, j int) bool {
			if len(list[i].files) != len(list[j].files) {
				return len(list[i].files) > len(list[j].files)
			}
			return list[i].language < list[j].language
		})
	}
	byCount(withSig)
	byCount(withoutSig)

	out := append(withSig, withoutSig...)
	if unrecognized != nil {
		out = append(out, *unrecognized)
	}
	return out
}

func writeSection(b *strings.Builder, sec section, opts Options) {
	switch {
	case sec.language == "":
		fmt.Fprintf(b, "UNRECOGNIZED files (%d files):\n", len(sec.files))
	case !sec.stat.GrammarAvailable:
		fmt.Fprintf(b, "%s files (%d files, grammar unavailable):\n", strings.ToUpper(sec.language), len(sec.files))
	default:
		fmt.Fprintf(b, "%s files (%d files):\n", strings.ToUpper(sec.language), len(sec.files))
	}
	for _, f := range sec.files {
		writeFileLine(b, f, f.Path, 1, opts)
	}
	b.WriteString("\n")
}

func writeFileLine(b *strings.Builder, f *model.FileInfo, display string, depth int, opts Options) {
	language := f.Language
	if language == "" {
		language = "no language"
	}
	fmt.Fprintf(b, "%s%s (%s, %d lines)", pad(opts, depth), display, language, f.Lines)
	if f.Degraded {
		b.WriteString(" [parse errors]")
	}
	b.WriteByte('\n')
	for _, sym := range f.Symbols {
		writeSymbol(b, sym, depth+1, opts)
	}
}

func writeSymbol(b *strings.Builder, sym *model.Symbol, depth int, opts Options) {
	line := sym.Signature
	if line == "" {
		line = sym.Name + " (no signature support)"
	}
	b.WriteString(pad(opts, depth))
	b.WriteString(line)
	if opts.LineNumbers {
		fmt.Fprintf(b, " [%d]", sym.Line)
	}
	b.WriteByte('\n')
	for _, child := range sym.Children {
		writeSymbol(b, child, depth+1, opts)
	}
}

func writeDir(b *strings.Builder, n *model.DirNode, prefix string, depth int, byPath map[string]*model.FileInfo, opts Options) {
	for _, name := range n.Files {
		full := name
		if prefix != "" {
			full = prefix + "/" + name
		}
		if f, ok := byPath[full]; ok {
			writeFileLine(b, f, name, depth, opts)
		}
	}
	for _, d := range n.Dirs {
		b.WriteString(pad(opts, depth))
		b.WriteString(d.Name)
		b.WriteString("/\n")
		childPrefix := d.Name
		if prefix != "" {
			childPrefix = prefix + "/" + d.Name
		}
		writeDir(b, d, childPrefix, depth+1, byPath, opts)
	}
}

func pad(opts Options, depth int) string {
	return strings.Repeat(" ", opts.Indent*depth)
}
