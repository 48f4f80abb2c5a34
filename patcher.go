package cfgpatch

import (
	"slices"

	"github.com/signadot/cfgpatch/debug"
	"github.com/signadot/cfgpatch/ir"
)

// Patcher evaluates the top-level patches of one document against a
// database.
type Patcher struct {
	db   *ir.Database
	file string
	// parents holds the nodes being patched, outermost first. Each is owned
	// by the patcher while on the stack.
	parents []*ir.ConfigNode
}

func NewPatcher(db *ir.Database, file string) *Patcher {
	return &Patcher{db: db, file: file}
}

// Evaluate applies a top-level patch. Errors are *PatchingError; on error
// the database is left as far as evaluation got.
func (p *Patcher) Evaluate(patch *NodePatch) error {
	if debug.Patch() {
		debug.Logf("evaluate %s %s%s from %s at %s\n", patch.Op, patch.Ident, nameSuffix(patch.TargetName), p.file, patch.Pos)
	}
	return asPatchingError(p.evaluate(patch), p.file)
}

func (p *Patcher) evaluate(patch *NodePatch) error {
	if !patch.IsTopLevel {
		return internalErr("top-level node %s not marked as top-level", patch.Ident)
	}
	switch patch.Op {
	case Insert:
		node, err := Materialize(patch)
		if err != nil {
			return err
		}
		node.File = p.file
		return p.db.Insert(node)
	case CopyFrom:
		return runtimeErr(CannotCopyFromTopLevel, "#%s at %s", patch.From, patch.Pos)
	case Rename:
		return runtimeErr(CannotRenameNode, "%s at %s", patch.Ident, patch.Pos)
	default:
		return p.sweep(&p.db.Nodes, patch, true)
	}
}

// sweep applies patch to every node of nodes its selector accepts.
func (p *Patcher) sweep(nodes *ir.NodeList, patch *NodePatch, topLevel bool) error {
	sel := NewSelector(patch)
	s := ir.NewSearcher(nodes, sel.Needle())
	matched := false
	for {
		co, target, err := s.Search()
		if err != nil {
			return err
		}
		if co == nil {
			break
		}
		matched = true
		switch patch.Op {
		case Copy:
			dup := target.Clone()
			if err := co.Replace(target); err != nil {
				return err
			}
			dup, err = p.apply(patch, dup)
			if err != nil {
				return err
			}
			if err := s.Push(dup); err != nil {
				return err
			}
		case Edit, EditOrCreate:
			target, err = p.apply(patch, target)
			if err != nil {
				return err
			}
			if err := co.Replace(target); err != nil {
				return err
			}
		case DefaultValue:
			return co.Replace(target)
		case Delete:
			if err := co.Delete(); err != nil {
				return err
			}
		default:
			return internalErr("%s cannot be swept", patch.Op)
		}
	}
	if matched {
		return nil
	}
	switch patch.Op {
	case EditOrCreate, DefaultValue:
	default:
		return nil
	}
	node, err := created(patch)
	if err != nil {
		return err
	}
	if !topLevel {
		return s.Push(node)
	}
	node.File = p.file
	return p.db.Insert(node)
}

// created materializes the body of an edit-or-create or default-value patch
// which matched nothing. Like an insertion, the body must be pure data.
func created(patch *NodePatch) (*ir.ConfigNode, error) {
	ins := *patch
	ins.Op = Insert
	return Materialize(&ins)
}

// apply applies the children of patch to node and returns it.
func (p *Patcher) apply(patch *NodePatch, node *ir.ConfigNode) (*ir.ConfigNode, error) {
	p.parents = append(p.parents, node)
	defer func() { p.parents = p.parents[:len(p.parents)-1] }()

	for _, child := range patch.Nodes {
		switch child.Op {
		case Insert:
			c, err := Materialize(child)
			if err != nil {
				return nil, err
			}
			node.Append(c)
		case CopyFrom:
			src, err := p.resolve(child.From)
			if err != nil {
				return nil, err
			}
			dup, err := p.apply(child, src)
			if err != nil {
				return nil, err
			}
			node.Append(dup)
		case Rename:
			return nil, runtimeErr(CannotRenameNode, "%s at %s", child.Ident, child.Pos)
		default:
			if err := p.sweep(&node.Nodes, child, false); err != nil {
				return nil, err
			}
		}
	}
	for _, k := range patch.Keys {
		if err := applyKey(node, k); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func applyKey(node *ir.ConfigNode, k *KeyPatch) error {
	switch k.Op {
	case Insert:
		if err := insertAssign(k); err != nil {
			return err
		}
		node.AddKey(k.Ident, k.Value)
	case Rename:
		node.Ident = k.Value
	case Edit:
		for _, i := range keyTargets(node, k) {
			v, err := assign(k.Assign, node.Keys[i].Value, k.Value)
			if err != nil {
				return err
			}
			node.Keys[i].Value = v
		}
	case EditOrCreate:
		targets := keyTargets(node, k)
		if len(targets) == 0 {
			node.AddKey(k.Ident, k.Value)
			return nil
		}
		for _, i := range targets {
			v, err := assign(k.Assign, node.Keys[i].Value, k.Value)
			if err != nil {
				return err
			}
			node.Keys[i].Value = v
		}
	case DefaultValue:
		if node.KeyIndex(k.Ident) < 0 {
			node.AddKey(k.Ident, k.Value)
		}
	case Delete:
		targets := keyTargets(node, k)
		for j := len(targets) - 1; j >= 0; j-- {
			i := targets[j]
			node.Keys = slices.Delete(node.Keys, i, i+1)
		}
	case Copy:
		for _, i := range keyTargets(node, k) {
			v, err := assign(k.Assign, node.Keys[i].Value, k.Value)
			if err != nil {
				return err
			}
			node.AddKey(k.Ident, v)
		}
	default:
		return internalErr("%s on key %s", k.Op, k.Ident)
	}
	return nil
}

// keyTargets returns the indices of the keys k applies to: the first key
// with k's identifier, or as chosen by k's index.
func keyTargets(node *ir.ConfigNode, k *KeyPatch) []int {
	indices := node.KeyIndices(k.Ident)
	switch {
	case len(indices) == 0:
		return nil
	case k.Index == nil:
		return indices[:1]
	case k.Index.All:
		return indices
	case k.Index.N < len(indices):
		return indices[k.Index.N : k.Index.N+1]
	}
	return nil
}
