package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/symtree/internal/domain/model"
)

func demoSummary() *model.RepoSummary {
	return &model.RepoSummary{
		Name:       "demo",
		Root:       "/tmp/demo",
		TotalFiles: 2,
		TotalLines: 15,
		Languages: map[string]model.LanguageStat{
			"python": {Files: 1, GrammarAvailable: true, SignatureSupport: true},
		},
		Files: []*model.FileInfo{
			{
				Path: "app.py", Language: "python", Lines: 10,
				Symbols: []*model.Symbol{
					{
						Category: model.CategoryClass, Name: "App", Signature: "class App", Line: 1, EndLine: 8,
						Children: []*model.Symbol{
							{Category: model.CategoryMethod, Name: "run", Signature: "def run(self)", Line: 2, EndLine: 4},
						},
					},
				},
			},
			{Path: "README", Lines: 5},
		},
	}
}

func TestTree_Golden(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Tree(&out, demoSummary(), DefaultOptions()))

	want := strings.Join([]string{
		"Repository: demo",
		"Total files: 2, Total lines: 15",
		"",
		"Language Support:",
		"  python: 1 files (signatures)",
		"",
		"PYTHON files (1 files):",
		"  app.py (python, 10 lines)",
		"    class App [1]",
		"      def run(self) [2]",
		"",
		"UNRECOGNIZED files (1 files):",
		"  README (no language, 5 lines)",
		"",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
}

func TestTree_SectionOrdering(t *testing.T) {
	s := &model.RepoSummary{
		Name:       "ord",
		TotalFiles: 5,
		Languages: map[string]model.LanguageStat{
			"python":     {Files: 1, GrammarAvailable: true, SignatureSupport: true},
			"go":         {Files: 2, GrammarAvailable: true, SignatureSupport: true},
			"javascript": {Files: 1, GrammarAvailable: true, SignatureSupport: false},
			"ruby":       {Files: 1, GrammarAvailable: false, SignatureSupport: false},
		},
		Files: []*model.FileInfo{
			{Path: "a.go", Language: "go", Lines: 1},
			{Path: "b.go", Language: "go", Lines: 1},
			{Path: "c.py", Language: "python", Lines: 1},
			{Path: "d.js", Language: "javascript", Lines: 1},
			{Path: "e.rb", Language: "ruby", Lines: 1},
		},
	}

	var out bytes.Buffer
	require.NoError(t, Tree(&out, s, DefaultOptions()))
	text := out.String()

	goAt := strings.Index(text, "GO files")
	pyAt := strings.Index(text, "PYTHON files")
	jsAt := strings.Index(text, "JAVASCRIPT files")
	rbAt := strings.Index(text, "RUBY files")

	require.NotEqual(t, -1, goAt)
	require.NotEqual(t, -1, pyAt)
	require.NotEqual(t, -1, jsAt)
	require.NotEqual(t, -1, rbAt)

	// Signature-backed languages lead, larger file counts first; grammar-only
	// and unavailable languages follow alphabetically.
	assert.Less(t, goAt, pyAt)
	assert.Less(t, pyAt, jsAt)
	assert.Less(t, jsAt, rbAt)

	assert.Contains(t, text, "RUBY files (1 files, grammar unavailable):")
}

func TestTree_NoSignatureFallbackLine(t *testing.T) {
	s := &model.RepoSummary{
		Name:       "js",
		TotalFiles: 1,
		Languages: map[string]model.LanguageStat{
			"javascript": {Files: 1, GrammarAvailable: true},
		},
		Files: []*model.FileInfo{
			{
				Path: "index.js", Language: "javascript", Lines: 3,
				Symbols: []*model.Symbol{
					{Category: model.CategoryFunction, Name: "boot", Line: 1, EndLine: 3},
				},
			},
		},
	}

	var out bytes.Buffer
	require.NoError(t, Tree(&out, s, DefaultOptions()))
	assert.Contains(t, out.String(), "    boot (no signature support) [1]")
	assert.Contains(t, out.String(), "  javascript: 1 files (symbols only)")
}

func TestTree_DegradedAndPartialMarkers(t *testing.T) {
	s := &model.RepoSummary{
		Name:       "deg",
		TotalFiles: 1,
		TotalLines: 4,
		Partial:    true,
		Languages: map[string]model.LanguageStat{
			"python": {Files: 1, GrammarAvailable: true, SignatureSupport: true},
		},
		Files: []*model.FileInfo{
			{Path: "broken.py", Language: "python", Lines: 4, Degraded: true},
		},
	}

	var out bytes.Buffer
	require.NoError(t, Tree(&out, s, DefaultOptions()))
	assert.Contains(t, out.String(), "Total files: 1, Total lines: 4 (partial scan)")
	assert.Contains(t, out.String(), "  broken.py (python, 4 lines) [parse errors]")
}

func TestTree_IndentWidth(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Tree(&out, demoSummary(), Options{Indent: 4, LineNumbers: true}))
	assert.Contains(t, out.String(), "        class App [1]")
	assert.Contains(t, out.String(), "            def run(self) [2]")
}

func TestTree_LineNumbersOff(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Tree(&out, demoSummary(), Options{Indent: 2}))
	assert.Contains(t, out.String(), "    class App\n")
	assert.NotContains(t, out.String(), "[1]")
}

func TestStructure_Golden(t *testing.T) {
	s := &model.RepoSummary{
		Name:       "demo",
		TotalFiles: 3,
		TotalLines: 30,
		Files: []*model.FileInfo{
			{Path: "main.py", Language: "python", Lines: 10},
			{Path: "src/app.py", Language: "python", Lines: 10},
			{Path: "src/util/helper.py", Language: "python", Lines: 10},
		},
	}

	var out bytes.Buffer
	require.NoError(t, Structure(&out, s, DefaultOptions()))

	want := strings.Join([]string{
		"Repository: demo",
		"Total files: 3, Total lines: 30",
		"",
		"main.py (python, 10 lines)",
		"src/",
		"  app.py (python, 10 lines)",
		"  util/",
		"    helper.py (python, 10 lines)",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
}

func TestReport(t *testing.T) {
	stats := map[string]model.LanguageStat{
		"python": {Files: 3, GrammarAvailable: true, SignatureSupport: true},
		"ruby":   {Files: 1},
	}

	var out bytes.Buffer
	require.NoError(t, Report(&out, stats))

	want := strings.Join([]string{
		"Language Support:",
		"  python: 3 files (signatures)",
		"  ruby: 1 files (grammar unavailable)",
		"",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
}

func TestJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, JSON(&out, demoSummary()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "demo", decoded["name"])
	assert.Equal(t, float64(2), decoded["total_files"])

	files, ok := decoded["files"].([]any)
	require.True(t, ok)
	assert.Len(t, files, 2)
}
