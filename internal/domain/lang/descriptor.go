// Package lang defines the per-language descriptor table that drives symbol
// extraction.
//
// A descriptor names the file extensions a language claims, the grammar it
// parses with, the node kinds that count as declarations, the node kinds that
// carry declaration names, and the signature template per symbol category.
// Descriptors are plain data; adding a language is a table entry, not code.
package lang

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/corey/symtree/internal/domain/model"
)

// ConfigError reports a malformed descriptor. It names the descriptor and
// the offending field so overlay authors can fix their YAML.
type ConfigError struct {
	Language string
	Field    string
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("language config %q: field %s: %s", e.Language, e.Field, e.Reason)
}

// KindRule maps one CST node kind to a symbol category. Rules are ordered;
// the first matching kind wins.
type KindRule struct {
	Kind     string               `yaml:"kind"`
	Category model.SymbolCategory `yaml:"category"`
}

// Descriptor is the complete extraction configuration for one language.
type Descriptor struct {
	// Name is the canonical language identifier (lowercase).
	Name string `yaml:"name"`
	// Grammar overrides the tree-sitter grammar name when it differs from
	// Name (e.g. csharp parses with the c_sharp grammar).
	Grammar string `yaml:"grammar,omitempty"`
	// Extensions are matched case-insensitively and include the dot.
	Extensions []string `yaml:"extensions"`
	// Filenames are exact base names claimed regardless of extension.
	Filenames []string `yaml:"filenames,omitempty"`
	// NameKinds are the node kinds that carry a declaration's name.
	NameKinds []string `yaml:"name_kinds"`
	// KindRules classify declaration node kinds, first match wins.
	KindRules []KindRule `yaml:"kinds"`
	// Templates render signatures per category. Missing entries fall back
	// to a bare {name}.
	Templates map[model.SymbolCategory]string `yaml:"templates,omitempty"`
}

// GrammarName returns the tree-sitter grammar identifier for this language.
func (d *Descriptor) GrammarName() string {
	if d.Grammar != "" {
		return d.Grammar
	}
	return d.Name
}

// Template returns the signature template for a category.
func (d *Descriptor) Template(cat model.SymbolCategory) string {
	if t, ok := d.Templates[cat]; ok && t != "" {
		return t
	}
	return "{name}"
}

// Classify maps a node kind to a symbol category given the categories of the
// matched ancestors, outermost first. A function kind enclosed by a class or
// interface anywhere in its ancestry classifies as a method. Returns false
// when the kind is not a declaration in this language.
func (d *Descriptor) Classify(kind string, ancestors []model.SymbolCategory) (model.SymbolCategory, bool) {
	for _, rule := range d.KindRules {
		if rule.Kind != kind {
			continue
		}
		cat := rule.Category
		if cat == model.CategoryFunction && enclosedByContainer(ancestors) {
			cat = model.CategoryMethod
		}
		return cat, true
	}
	return "", false
}

func enclosedByContainer(ancestors []model.SymbolCategory) bool {
	for _, a := range ancestors {
		if a.Container() {
			return true
		}
	}
	return false
}

// IsNameKind reports whether the node kind carries declaration names.
func (d *Descriptor) IsNameKind(kind string) bool {
	for _, k := range d.NameKinds {
		if k == kind {
			return true
		}
	}
	return false
}

var validCategories = map[model.SymbolCategory]bool{
	model.CategoryFunction:  true,
	model.CategoryMethod:    true,
	model.CategoryClass:     true,
	model.CategoryInterface: true,
	model.CategoryOther:     true,
}

// Validate checks the descriptor for structural mistakes. The returned error
// is always a *ConfigError.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return &ConfigError{Language: d.Name, Field: "name", Reason: "must not be empty"}
	}
	if len(d.Extensions) == 0 && len(d.Filenames) == 0 {
		return &ConfigError{Language: d.Name, Field: "extensions", Reason: "at least one extension or filename required"}
	}
	for _, ext := range d.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return &ConfigError{Language: d.Name, Field: "extensions", Reason: fmt.Sprintf("%q must start with a dot", ext)}
		}
	}
	if len(d.KindRules) == 0 {
		return &ConfigError{Language: d.Name, Field: "kinds", Reason: "at least one kind rule required"}
	}
	seen := make(map[string]bool, len(d.KindRules))
	for _, rule := range d.KindRules {
		if rule.Kind == "" {
			return &ConfigError{Language: d.Name, Field: "kinds", Reason: "kind must not be empty"}
		}
		if !validCategories[rule.Category] {
			return &ConfigError{Language: d.Name, Field: "kinds", Reason: fmt.Sprintf("unknown category %q for kind %q", rule.Category, rule.Kind)}
		}
		if seen[rule.Kind] {
			return &ConfigError{Language: d.Name, Field: "kinds", Reason: fmt.Sprintf("duplicate kind %q", rule.Kind)}
		}
		seen[rule.Kind] = true
	}
	if len(d.NameKinds) == 0 {
		return &ConfigError{Language: d.Name, Field: "name_kinds", Reason: "at least one name kind required"}
	}
	for cat, tmpl := range d.Templates {
		if !validCategories[cat] {
			return &ConfigError{Language: d.Name, Field: "templates", Reason: fmt.Sprintf("unknown category %q", cat)}
		}
		if err := ValidateTemplate(tmpl); err != nil {
			return &ConfigError{Language: d.Name, Field: "templates", Reason: err.Error()}
		}
	}
	return nil
}

// Registry holds validated descriptors for the process lifetime. Lookups and
// detection never re-validate.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*Descriptor
	byExt       map[string]string
	byFilename  map[string]string
}

// NewRegistry validates every descriptor and builds the detection index.
func NewRegistry(descs ...*Descriptor) (*Registry, error) {
	r := &Registry{
		descriptors: make(map[string]*Descriptor, len(descs)),
		byExt:       make(map[string]string),
		byFilename:  make(map[string]string),
	}
	if err := r.Apply(descs...); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply validates and installs descriptors, replacing any existing entry
// with the same name. On error the registry is left unchanged.
func (r *Registry) Apply(descs ...*Descriptor) error {
	for _, d := range descs {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range descs {
		r.descriptors[d.Name] = d
	}
	r.reindex()
	return nil
}

func (r *Registry) reindex() {
	r.byExt = make(map[string]string)
	r.byFilename = make(map[string]string)
	for name, d := range r.descriptors {
		for _, ext := range d.Extensions {
			r.byExt[strings.ToLower(ext)] = name
		}
		for _, fn := range d.Filenames {
			r.byFilename[fn] = name
		}
	}
}

// Lookup returns the descriptor for a language name.
func (r *Registry) Lookup(language string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[language]
	return d, ok
}

// DetectLanguage maps a path to a language name, exact filename first, then
// extension. Returns "" when nothing matches.
func (r *Registry) DetectLanguage(path string) string {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if lang, ok := r.byFilename[base]; ok {
		return lang
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		if lang, ok := r.byExt[strings.ToLower(base[i:])]; ok {
			return lang
		}
	}
	return ""
}

// Languages returns all registered language names, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry of builtin descriptors, built once per
// process.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := NewRegistry(Builtins()...)
		if err != nil {
			panic(fmt.Sprintf("builtin language table invalid: %v", err))
		}
		defaultReg = reg
	})
	return defaultReg
}
