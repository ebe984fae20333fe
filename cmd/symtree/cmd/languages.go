package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/symtree/internal/adapters/treesitter"
	"github.com/corey/symtree/internal/app"
	"github.com/corey/symtree/internal/discover"
	"github.com/corey/symtree/internal/domain/render"
)

var languagesCmd = &cobra.Command{
	Use:   "languages [path]",
	Short: "List languages and their grammar status",
	Long: "Lists every configured language with its file extensions, grammar availability,\n" +
		"and signature support. With a path, reports the languages found in that\n" +
		"repository instead, with per-language file counts.",
	Args: cobra.MaximumNArgs(1),
	RunE: runLanguages,
}

func runLanguages(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	root := targetDir(args)

	reg, engine, err := newEngine(root, cfg)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		paths, err := discover.Files(cmd.Context(), root, discover.Options{MaxFileSize: cfg.MaxFileSize})
		if err != nil {
			return err
		}
		fileLangs := make([]string, len(paths))
		for i, p := range paths {
			fileLangs[i] = reg.DetectLanguage(p)
		}
		return render.Report(os.Stdout, app.BuildReport(engine, fileLangs))
	}

	builtin := make(map[string]bool)
	for _, name := range treesitter.BuiltinGrammarNames() {
		builtin[name] = true
	}

	fmt.Printf("%-12s %-32s %-10s %s\n", "LANGUAGE", "MATCHES", "GRAMMAR", "SIGNATURES")
	for _, name := range reg.Languages() {
		d, ok := reg.Lookup(name)
		if !ok {
			continue
		}

		matches := strings.Join(d.Extensions, " ")
		if len(d.Filenames) > 0 {
			matches += " (" + strings.Join(d.Filenames, ", ") + ")"
		}

		grammar := "missing"
		switch {
		case builtin[d.GrammarName()]:
			grammar = "builtin"
		case engine.GrammarAvailable(name):
			grammar = "loaded"
		}

		signatures := "no"
		if engine.SignatureSupport(name) {
			signatures = "yes"
		}

		fmt.Printf("%-12s %-32s %-10s %s\n", name, matches, grammar, signatures)
	}
	return nil
}
