// Package treesitter implements symbol extraction using tree-sitter grammars.
// It parses source files, walks the syntax tree with the language's
// descriptor, and renders signatures through the registered extractors.
//
// Six grammars compile in via CGo from the official tree-sitter modules.
// Other languages load at runtime from .so/.dylib files via purego.
package treesitter

import (
	"context"
	"sort"
	"sync"
	"time"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/symtree/internal/domain/lang"
	"github.com/corey/symtree/internal/ports"
)

// defaultProvisionTimeout bounds one dynamic grammar load attempt.
const defaultProvisionTimeout = 5 * time.Second

// Engine implements ports.SymbolSource. Grammars resolve compiled-in first,
// then through the dynamic loader. Each language gets at most one
// provisioning attempt per process; the outcome is recorded and replayed.
type Engine struct {
	registry *lang.Registry
	loader   *DynamicLoader
	timeout  time.Duration

	mu       sync.Mutex
	grammars map[string]*tree_sitter.Language // grammar name -> language
	outcomes map[string]error                 // grammar name -> provisioning outcome
}

// NewEngine creates an engine over a descriptor registry. loader may be nil
// to disable dynamic grammar loading.
func NewEngine(registry *lang.Registry, loader *DynamicLoader) *Engine {
	return &Engine{
		registry: registry,
		loader:   loader,
		timeout:  defaultProvisionTimeout,
		grammars: builtinGrammars(),
		outcomes: make(map[string]error),
	}
}

// SetProvisionTimeout overrides the per-attempt provisioning bound.
func (e *Engine) SetProvisionTimeout(d time.Duration) {
	if d > 0 {
		e.timeout = d
	}
}

// GrammarAvailable reports whether the language's grammar is loaded. It never
// triggers provisioning.
func (e *Engine) GrammarAvailable(language string) bool {
	d, ok := e.registry.Lookup(language)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	_, loaded := e.grammars[d.GrammarName()]
	return loaded
}

// EnsureGrammar makes the language's grammar available. The first call for a
// grammar performs the dynamic load attempt, bounded by the provisioning
// timeout; later calls return the recorded outcome. Grammars shared between
// languages (typescript/tsx) share one attempt.
func (e *Engine) EnsureGrammar(ctx context.Context, language string) error {
	d, ok := e.registry.Lookup(language)
	if !ok {
		return &ports.ProvisionError{Language: language, Reason: "no descriptor registered"}
	}
	grammar := d.GrammarName()

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, loaded := e.grammars[grammar]; loaded {
		return nil
	}
	if err, attempted := e.outcomes[grammar]; attempted {
		return err
	}
	err := e.loadDynamicLocked(ctx, language, grammar)
	e.outcomes[grammar] = err
	return err
}

// loadDynamicLocked runs one loader attempt under e.mu so concurrent callers
// cannot race a second attempt for the same grammar.
func (e *Engine) loadDynamicLocked(ctx context.Context, language, grammar string) error {
	if e.loader == nil {
		return &ports.ProvisionError{Language: language, Reason: "grammar not compiled in and dynamic loading disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type outcome struct {
		language *tree_sitter.Language
		err      error
	}
	ch := make(chan outcome, 1)
	go func() {
		loaded, err := e.loader.Load(grammar)
		ch <- outcome{loaded, err}
	}()

	select {
	case <-ctx.Done():
		return &ports.ProvisionError{Language: language, Reason: "provisioning timed out", Err: ctx.Err()}
	case res := <-ch:
		if res.err != nil {
			return &ports.ProvisionError{Language: language, Reason: "dynamic load failed", Err: res.err}
		}
		e.grammars[grammar] = res.language
		return nil
	}
}

// SignatureSupport reports whether a signature extractor is registered for
// the language.
func (e *Engine) SignatureSupport(language string) bool {
	return extractorFor(language) != nil
}

// Extract parses source with the language's grammar and returns the nested
// symbols. The tree containing error nodes marks the result Degraded but
// still yields whatever symbols the walk found.
func (e *Engine) Extract(ctx context.Context, language string, source []byte) (*ports.ExtractResult, error) {
	d, ok := e.registry.Lookup(language)
	if !ok {
		return nil, &ports.ProvisionError{Language: language, Reason: "no descriptor registered"}
	}
	grammar, loaded := e.grammar(d.GrammarName())
	if !loaded {
		if err := e.EnsureGrammar(ctx, language); err != nil {
			return nil, err
		}
		grammar, _ = e.grammar(d.GrammarName())
	}

	if len(source) == 0 {
		return &ports.ExtractResult{}, nil
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(grammar); err != nil {
		return nil, &ports.ParseError{Language: language, Err: err}
	}

	tree := parser.Parse(source, nil)
	defer tree.Close()

	root := tree.RootNode()
	symbols, warnings := walkTree(root, source, d, extractorFor(language))
	return &ports.ExtractResult{
		Symbols:  symbols,
		Degraded: root.HasError(),
		Warnings: warnings,
	}, nil
}

func (e *Engine) grammar(name string) (*tree_sitter.Language, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	g, ok := e.grammars[name]
	return g, ok
}

// BuiltinGrammarNames returns the grammar names compiled into the binary,
// sorted.
func BuiltinGrammarNames() []string {
	names := make([]string, 0, 6)
	for name := range builtinGrammars() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
