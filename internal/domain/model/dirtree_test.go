package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDirTree_Nested(t *testing.T) {
	tree := BuildDirTree("proj", []string{
		"src/app/main.py",
		"src/util.py",
		"README.md",
		"src/app/helpers.py",
	})

	assert.Equal(t, "proj", tree.Name)
	assert.Equal(t, []string{"README.md"}, tree.Files)
	require.Len(t, tree.Dirs, 1)

	src := tree.Dirs[0]
	assert.Equal(t, "src", src.Name)
	assert.Equal(t, []string{"util.py"}, src.Files)
	require.Len(t, src.Dirs, 1)

	app := src.Dirs[0]
	assert.Equal(t, "app", app.Name)
	assert.Equal(t, []string{"helpers.py", "main.py"}, app.Files)
	assert.Empty(t, app.Dirs)
}

func TestBuildDirTree_SiblingDirsSorted(t *testing.T) {
	tree := BuildDirTree("proj", []string{
		"zeta/a.go",
		"alpha/b.go",
		"mid/c.go",
	})

	require.Len(t, tree.Dirs, 3)
	assert.Equal(t, "alpha", tree.Dirs[0].Name)
	assert.Equal(t, "mid", tree.Dirs[1].Name)
	assert.Equal(t, "zeta", tree.Dirs[2].Name)
}

func TestBuildDirTree_Empty(t *testing.T) {
	tree := BuildDirTree("empty", nil)
	assert.Equal(t, "empty", tree.Name)
	assert.Empty(t, tree.Dirs)
	assert.Empty(t, tree.Files)
}
