package ir

import (
	"cmp"
	"slices"
)

// Database is the result of patching: an ordered list of top-level nodes.
type Database struct {
	Nodes NodeList
}

// Insert appends a top-level node.
func (db *Database) Insert(node *ConfigNode) error {
	if node == nil {
		return internalErr("attempted to insert a nil top-level node")
	}
	if !node.IsTopLevel() {
		return internalErr("attempted to insert top-level node %q not marked as such", node.Ident)
	}
	db.Nodes = append(db.Nodes, node)
	return nil
}

func (db *Database) Len() int {
	return len(db.Nodes)
}

// Sorted returns the top-level nodes stably sorted by origin file, so that
// nodes from one file are clustered in insertion order.
func (db *Database) Sorted() []*ConfigNode {
	res := make([]*ConfigNode, 0, len(db.Nodes))
	for _, n := range db.Nodes {
		if n != nil {
			res = append(res, n)
		}
	}
	slices.SortStableFunc(res, func(a, b *ConfigNode) int {
		return cmp.Compare(a.File, b.File)
	})
	return res
}

// Files returns the distinct origin files in sorted order.
func (db *Database) Files() []string {
	var res []string
	for _, n := range db.Sorted() {
		if len(res) == 0 || res[len(res)-1] != n.File {
			res = append(res, n.File)
		}
	}
	return res
}
