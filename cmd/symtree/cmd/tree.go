package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corey/symtree/internal/adapters/bbolt"
	"github.com/corey/symtree/internal/app"
	"github.com/corey/symtree/internal/discover"
	"github.com/corey/symtree/internal/domain/render"
)

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Print the repository symbol tree (same as the bare command)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

// runScan is the root command: discover, build, render.
func runScan(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	root := targetDir(args)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	out, err := scanOnce(ctx, root, cfg)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// scanOnce runs one full scan of root and returns the rendered output. The
// render cache only ever holds the default tree view; JSON and structure
// renders always rebuild.
func scanOnce(ctx context.Context, root string, cfg scanConfig) (string, error) {
	paths, err := discover.Files(ctx, root, discover.Options{MaxFileSize: cfg.MaxFileSize})
	if err != nil {
		return "", err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	var cache *bbolt.Cache
	var fingerprint string
	if cfg.Cache && !cfg.JSON && !cfg.Structure {
		fingerprint = app.Fingerprint(root, paths)
		cache, err = openCache(root)
		if err != nil {
			warnf(cfg, "cache unavailable: %v", err)
		} else {
			defer cache.Close()
			if cached, ok, err := cache.Load(absRoot, fingerprint); err == nil && ok {
				return cached, nil
			}
		}
	}

	reg, engine, err := newEngine(root, cfg)
	if err != nil {
		return "", err
	}

	b := app.NewBuilder(reg, engine)
	b.Workers = cfg.Workers
	b.Languages = cfg.Langs
	b.MaxFiles = cfg.MaxFiles
	if !cfg.Quiet {
		b.Warnings = os.Stderr
	}

	summary, err := b.Build(ctx, root, paths)
	if err != nil {
		return "", err
	}

	opts := render.Options{Indent: cfg.Indent, LineNumbers: cfg.LineNumbers}
	var buf bytes.Buffer
	switch {
	case cfg.JSON:
		err = render.JSON(&buf, summary)
	case cfg.Structure:
		err = render.Structure(&buf, summary, opts)
	default:
		err = render.Tree(&buf, summary, opts)
	}
	if err != nil {
		return "", err
	}

	if cache != nil && !summary.Partial {
		if err := cache.Save(absRoot, fingerprint, buf.String()); err != nil {
			warnf(cfg, "cache save: %v", err)
		}
	}
	return buf.String(), nil
}

// openCache opens the per-repository cache database, creating .symtree/ on
// first use.
func openCache(root string) (*bbolt.Cache, error) {
	dir := filepath.Join(root, ".symtree")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return bbolt.Open(filepath.Join(dir, "cache.db"))
}

func warnf(cfg scanConfig, format string, args ...any) {
	if cfg.Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
