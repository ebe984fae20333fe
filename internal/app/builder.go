// Package app orchestrates a repository scan: language detection, grammar
// provisioning, concurrent per-file extraction, and summary assembly.
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/corey/symtree/internal/domain/lang"
	"github.com/corey/symtree/internal/domain/model"
	"github.com/corey/symtree/internal/ports"
)

// Builder turns a discovered path list into a RepoSummary. Zero value is not
// usable; construct with NewBuilder.
type Builder struct {
	registry *lang.Registry
	source   ports.SymbolSource

	// Workers bounds the extraction pool. <=0 uses GOMAXPROCS.
	Workers int
	// Languages keeps only files of the named languages when non-empty.
	Languages []string
	// MaxFiles caps the number of processed files when > 0.
	MaxFiles int
	// Warnings receives "Warning: ..." lines; nil discards them.
	Warnings io.Writer

	warnMu sync.Mutex
}

// NewBuilder wires a builder to a descriptor registry and a symbol source.
func NewBuilder(reg *lang.Registry, src ports.SymbolSource) *Builder {
	return &Builder{registry: reg, source: src}
}

type fileTask struct {
	path     string
	language string
}

// Build processes the given repository-relative paths under root and returns
// the aggregated summary. Files keep path-sort order regardless of which
// worker finishes first. Cancelling ctx stops new dispatch; the summary then
// covers the already-completed files and is marked Partial.
//
// Only an unusable root is fatal. Per-file failures degrade that file and the
// run continues.
func (b *Builder) Build(ctx context.Context, root string, paths []string) (*model.RepoSummary, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	tasks := b.classify(paths)
	b.provisionMissing(ctx, tasks)

	langs := make([]string, len(tasks))
	for i, t := range tasks {
		langs[i] = t.language
	}
	report := BuildReport(b.source, langs)

	results := make([]*model.FileInfo, len(tasks))
	dispatched := b.runPool(ctx, absRoot, tasks, results)

	summary := &model.RepoSummary{
		Name:      filepath.Base(absRoot),
		Root:      absRoot,
		Languages: report,
		Partial:   dispatched < len(tasks),
	}
	for _, fi := range results {
		if fi == nil {
			continue
		}
		summary.Files = append(summary.Files, fi)
		summary.TotalFiles++
		summary.TotalLines += fi.Lines
	}
	return summary, nil
}

// classify detects each path's language and applies the language filter and
// file cap. Input order (path-sorted) is preserved.
func (b *Builder) classify(paths []string) []fileTask {
	langSet := make(map[string]struct{}, len(b.Languages))
	for _, l := range b.Languages {
		langSet[l] = struct{}{}
	}

	var tasks []fileTask
	for _, p := range paths {
		language := b.registry.DetectLanguage(p)
		if len(langSet) > 0 {
			if _, ok := langSet[language]; !ok {
				continue
			}
		}
		tasks = append(tasks, fileTask{path: p, language: language})
	}

	if b.MaxFiles > 0 && len(tasks) > b.MaxFiles {
		b.warnf("file limit reached, scanning first %d of %d files", b.MaxFiles, len(tasks))
		tasks = tasks[:b.MaxFiles]
	}
	return tasks
}

// provisionMissing makes one EnsureGrammar call per needed language whose
// grammar is not yet loaded. The source records outcomes, so concurrent or
// repeated files of the same language never retry.
func (b *Builder) provisionMissing(ctx context.Context, tasks []fileTask) {
	seen := make(map[string]struct{})
	for _, t := range tasks {
		if t.language == "" {
			continue
		}
		if _, ok := seen[t.language]; ok {
			continue
		}
		seen[t.language] = struct{}{}
		if b.source.GrammarAvailable(t.language) {
			continue
		}
		if err := b.source.EnsureGrammar(ctx, t.language); err != nil {
			b.warnf("%v", err)
		}
	}
}

// runPool extracts files across a bounded worker pool, writing each result to
// its task's slot. Returns how many tasks were dispatched before ctx fired.
func (b *Builder) runPool(ctx context.Context, absRoot string, tasks []fileTask, results []*model.FileInfo) int {
	if len(tasks) == 0 {
		return 0
	}
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	type job struct {
		idx  int
		task fileTask
	}
	jobs := make(chan job)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = b.processFile(ctx, absRoot, j.task)
			}
		}()
	}

	dispatched := 0
feed:
	for i, t := range tasks {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, task: t}:
			dispatched++
		}
	}
	close(jobs)
	wg.Wait()
	return dispatched
}

func (b *Builder) processFile(ctx context.Context, absRoot string, t fileTask) *model.FileInfo {
	fi := &model.FileInfo{Path: t.path, Language: t.language}

	data, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(t.path)))
	if err != nil {
		b.warnf("read %s: %v", t.path, err)
		fi.Degraded = true
		return fi
	}
	fi.Lines = countLines(data)

	if t.language == "" || !b.source.GrammarAvailable(t.language) {
		return fi
	}

	res, err := b.source.Extract(ctx, t.language, data)
	if err != nil {
		b.warnf("%s: %v", t.path, err)
		fi.Degraded = true
		return fi
	}
	for _, w := range res.Warnings {
		b.warnf("%s: %s", t.path, w)
	}
	fi.Symbols = res.Symbols
	fi.Degraded = res.Degraded
	return fi
}

func (b *Builder) warnf(format string, args ...any) {
	if b.Warnings == nil {
		return
	}
	b.warnMu.Lock()
	defer b.warnMu.Unlock()
	fmt.Fprintf(b.Warnings, "Warning: "+format+"\n", args...)
}

// countLines counts newline-terminated lines, plus a final unterminated one.
func countLines(data []byte) int {
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}
