package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/corey/symtree/internal/adapters/treesitter"
	"github.com/corey/symtree/internal/domain/lang"
)

var rootCmd = &cobra.Command{
	Use:   "symtree [path]",
	Short: "Repository symbol tree indexer",
	Long: "Scans a repository, extracts declarations (functions, methods, classes,\n" +
		"interfaces) per language using tree-sitter grammars, and prints a nested\n" +
		"symbol tree grouped by language.",
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int("workers", 0, "Parallel parse workers (0 = all CPUs)")
	pf.Int("indent", 2, "Spaces per nesting level")
	pf.StringSlice("lang", nil, "Only scan these languages (repeatable)")
	pf.Int("max-files", 0, "Stop after this many files (0 = unlimited)")
	pf.Int64("max-file-size", 1<<20, "Skip files larger than this many bytes (0 = unlimited)")
	pf.Bool("json", false, "Emit the summary as JSON")
	pf.Bool("quiet", false, "Suppress warnings")
	pf.Bool("cache", false, "Reuse cached output when the file set is unchanged")
	pf.Bool("line-numbers", true, "Append [line] markers to symbol lines")
	pf.Bool("structure", false, "Group by directory instead of language")
	pf.String("descriptors", "", "YAML file with extra language descriptors")
	pf.String("grammar-dir", "", "Extra directory searched for grammar libraries")

	for _, name := range []string{
		"workers", "indent", "lang", "max-files", "max-file-size", "json",
		"quiet", "cache", "line-numbers", "structure", "descriptors", "grammar-dir",
	} {
		viper.BindPFlag(name, pf.Lookup(name))
	}

	// Env vars: SYMTREE_WORKERS, SYMTREE_GRAMMAR_DIR, etc.
	viper.SetEnvPrefix("SYMTREE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Optional config file: .symtree.yaml in the cwd or home directory.
	viper.SetConfigName(".symtree")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.ReadInConfig()

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(grammarsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

// scanConfig carries the options every scan-shaped command reads from viper.
type scanConfig struct {
	Workers     int
	Indent      int
	Langs       []string
	MaxFiles    int
	MaxFileSize int64
	JSON        bool
	Quiet       bool
	Cache       bool
	LineNumbers bool
	Structure   bool
	Descriptors string
	GrammarDir  string
}

func loadConfig() scanConfig {
	return scanConfig{
		Workers:     viper.GetInt("workers"),
		Indent:      viper.GetInt("indent"),
		Langs:       viper.GetStringSlice("lang"),
		MaxFiles:    viper.GetInt("max-files"),
		MaxFileSize: viper.GetInt64("max-file-size"),
		JSON:        viper.GetBool("json"),
		Quiet:       viper.GetBool("quiet"),
		Cache:       viper.GetBool("cache"),
		LineNumbers: viper.GetBool("line-numbers"),
		Structure:   viper.GetBool("structure"),
		Descriptors: viper.GetString("descriptors"),
		GrammarDir:  viper.GetString("grammar-dir"),
	}
}

// targetDir resolves the positional path argument against the cwd.
func targetDir(args []string) string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(args) > 0 {
		if filepath.IsAbs(args[0]) {
			dir = args[0]
		} else {
			dir = filepath.Join(dir, args[0])
		}
	}
	return dir
}

// newEngine builds the descriptor registry (with any overlay applied) and the
// tree-sitter engine with its dynamic grammar search paths.
func newEngine(root string, cfg scanConfig) (*lang.Registry, *treesitter.Engine, error) {
	reg := lang.Default()
	if cfg.Descriptors != "" {
		if _, err := lang.LoadOverlay(reg, cfg.Descriptors); err != nil {
			return nil, nil, err
		}
	}

	paths := treesitter.DefaultGrammarPaths(root)
	if cfg.GrammarDir != "" {
		paths = append([]string{cfg.GrammarDir}, paths...)
	}
	engine := treesitter.NewEngine(reg, treesitter.NewDynamicLoader(paths))
	return reg, engine, nil
}
