package ir

// NameKey is the identifier of the key whose value names a node.
const NameKey = "name"

type ConfigKey struct {
	Ident string
	Value string
}

// ConfigNode is an element of the result tree.
//
// File is the path of the document which inserted the node and is only set on
// top-level nodes.
type ConfigNode struct {
	Ident string
	File  string
	Keys  []ConfigKey
	Nodes NodeList
}

// NodeList is an ordered list of node slots. A nil slot is a hole left by a
// node which is checked out by a [Searcher]; holes never outlive a
// [Checkout].
type NodeList []*ConfigNode

func (n *ConfigNode) IsTopLevel() bool {
	return n.File != ""
}

// Name returns the value of the first "name" key.
func (n *ConfigNode) Name() (string, bool) {
	i := n.KeyIndex(NameKey)
	if i < 0 {
		return "", false
	}
	return n.Keys[i].Value, true
}

// KeyIndex returns the index of the first key with identifier ident, or -1.
func (n *ConfigNode) KeyIndex(ident string) int {
	for i := range n.Keys {
		if n.Keys[i].Ident == ident {
			return i
		}
	}
	return -1
}

// KeyIndices returns the indices of all keys with identifier ident.
func (n *ConfigNode) KeyIndices(ident string) []int {
	var res []int
	for i := range n.Keys {
		if n.Keys[i].Ident == ident {
			res = append(res, i)
		}
	}
	return res
}

func (n *ConfigNode) AddKey(ident, value string) {
	n.Keys = append(n.Keys, ConfigKey{Ident: ident, Value: value})
}

// Append adds child at the end of n's children.  It must not be called while
// a child of n is checked out.
func (n *ConfigNode) Append(child *ConfigNode) {
	n.Nodes = append(n.Nodes, child)
}

// Clone returns a deep copy of n. Holes are preserved.
func (n *ConfigNode) Clone() *ConfigNode {
	res := &ConfigNode{
		Ident: n.Ident,
		File:  n.File,
	}
	if n.Keys != nil {
		res.Keys = make([]ConfigKey, len(n.Keys))
		copy(res.Keys, n.Keys)
	}
	if n.Nodes != nil {
		res.Nodes = make(NodeList, len(n.Nodes))
		for i, child := range n.Nodes {
			if child == nil {
				continue
			}
			res.Nodes[i] = child.Clone()
		}
	}
	return res
}

// Visit calls f on n and its descendants in document order, skipping holes.
func (n *ConfigNode) Visit(f func(node *ConfigNode, depth int) error) error {
	return n.visit(f, 0)
}

func (n *ConfigNode) visit(f func(*ConfigNode, int) error, depth int) error {
	if err := f(n, depth); err != nil {
		return err
	}
	for _, child := range n.Nodes {
		if child == nil {
			continue
		}
		if err := child.visit(f, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Holes returns the number of holes in l.
func (l NodeList) Holes() int {
	c := 0
	for _, n := range l {
		if n == nil {
			c++
		}
	}
	return c
}
