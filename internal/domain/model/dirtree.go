package model

import (
	"sort"
	"strings"
)

// DirNode is one directory in the repository structure view. Dirs and Files
// are kept sorted, directories before files.
type DirNode struct {
	Name  string     `json:"name"`
	Dirs  []*DirNode `json:"dirs,omitempty"`
	Files []string   `json:"files,omitempty"`
}

// BuildDirTree folds relative file paths into a nested directory tree rooted
// at name. Paths use forward slashes; ordering of the input does not matter.
func BuildDirTree(name string, paths []string) *DirNode {
	root := &DirNode{Name: name}
	for _, p := range paths {
		parts := strings.Split(p, "/")
		node := root
		for _, dir := range parts[:len(parts)-1] {
			node = node.child(dir)
		}
		node.Files = append(node.Files, parts[len(parts)-1])
	}
	root.sortTree()
	return root
}

func (n *DirNode) child(name string) *DirNode {
	for _, d := range n.Dirs {
		if d.Name == name {
			return d
		}
	}
	d := &DirNode{Name: name}
	n.Dirs = append(n.Dirs, d)
	return d
}

func (n *DirNode) sortTree() {
	sort.Slice(n.Dirs, func(i, j int) bool { return n.Dirs[i].Name < n.Dirs[j].Name })
	sort.Strings(n.Files)
	for _, d := range n.Dirs {
		d.sortTree()
	}
}
