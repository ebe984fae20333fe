package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolCategory_Container(t *testing.T) {
	assert.True(t, CategoryClass.Container())
	assert.True(t, CategoryInterface.Container())
	assert.False(t, CategoryFunction.Container())
	assert.False(t, CategoryMethod.Container())
	assert.False(t, CategoryOther.Container())
}

func TestRepoSummary_SymbolCount(t *testing.T) {
	rs := &RepoSummary{
		Files: []*FileInfo{
			{
				Path: "a.py",
				Symbols: []*Symbol{
					{Category: CategoryClass, Name: "Foo", Children: []*Symbol{
						{Category: CategoryMethod, Name: "bar"},
						{Category: CategoryMethod, Name: "baz"},
					}},
					{Category: CategoryFunction, Name: "main"},
				},
			},
			{Path: "b.xyz"},
		},
	}
	assert.Equal(t, 4, rs.SymbolCount())
}

func TestRepoSummary_SymbolCount_Empty(t *testing.T) {
	rs := &RepoSummary{}
	assert.Equal(t, 0, rs.SymbolCount())
}
