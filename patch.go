package cfgpatch

import (
	"strings"

	"github.com/signadot/cfgpatch/ir"
	"github.com/signadot/cfgpatch/parse"
	"github.com/signadot/cfgpatch/pass"
	"github.com/signadot/cfgpatch/token"
)

// NodePatch is the patch intent of a parsed node. It is not modified once
// built.
type NodePatch struct {
	IsTopLevel bool
	Op         Op
	Ident      string
	TargetName *string
	// From is the source of a CopyFrom.
	From  *parse.Path
	Has   []parse.HasPredicate
	Needs Needs
	Index *parse.Index
	Pass  pass.Pass
	Nodes []*NodePatch
	Keys  []*KeyPatch
	Pos   token.Pos
}

type KeyPatch struct {
	Op     Op
	Ident  string
	Needs  Needs
	Assign parse.AssignOp
	Index  *parse.Index
	Value  string
	Pos    token.Pos
}

func NewNodePatch(node *parse.Node, isTopLevel bool) *NodePatch {
	res := &NodePatch{
		IsTopLevel: isTopLevel,
		Op:         opOf(node.Operator, node.Path),
		Ident:      node.Identifier,
		TargetName: node.Name,
		From:       node.Path,
		Has:        node.Has,
		Needs:      Needs(node.Needs),
		Index:      node.Index,
		Pass:       node.Pass,
		Pos:        node.Pos,
	}
	for _, item := range node.Block {
		switch x := item.(type) {
		case *parse.Node:
			res.Nodes = append(res.Nodes, NewNodePatch(x, false))
		case *parse.KeyVal:
			res.Keys = append(res.Keys, NewKeyPatch(x))
		}
	}
	return res
}

func NewKeyPatch(kv *parse.KeyVal) *KeyPatch {
	return &KeyPatch{
		Op:     opOf(kv.Operator, nil),
		Ident:  kv.Key,
		Needs:  Needs(kv.Needs),
		Assign: kv.Assign,
		Index:  kv.Index,
		Value:  kv.Value,
		Pos:    kv.Pos,
	}
}

// shallow returns a copy of p sharing everything but its child lists.
func (p *NodePatch) shallow() *NodePatch {
	res := *p
	res.Nodes = nil
	res.Keys = nil
	return &res
}

// Materialize builds the node described by an insertion patch. Every
// descendant must itself be an insertion, otherwise a PatchInNonPatchNode
// error is returned. The result carries no origin file.
func Materialize(p *NodePatch) (*ir.ConfigNode, error) {
	if p.Op != Insert {
		return nil, runtimeErr(PatchInNonPatchNode, "%s of node %s at %s", p.Op, p.Ident, p.Pos)
	}
	node := &ir.ConfigNode{Ident: p.Ident}
	for _, k := range p.Keys {
		if k.Op != Insert {
			return nil, runtimeErr(PatchInNonPatchNode, "%s of key %s at %s", k.Op, k.Ident, k.Pos)
		}
		if err := insertAssign(k); err != nil {
			return nil, err
		}
		node.AddKey(k.Ident, strings.TrimSpace(k.Value))
	}
	for _, c := range p.Nodes {
		child, err := Materialize(c)
		if err != nil {
			return nil, err
		}
		node.Append(child)
	}
	return node, nil
}

// insertAssign rejects inserted keys written with an arithmetic or regex
// assignment, which have no value to apply to.
func insertAssign(k *KeyPatch) error {
	if k.Assign == parse.AssignSet {
		return nil
	}
	return runtimeErr(BadAssignment, "%s on inserted key %s at %s", k.Assign, k.Ident, k.Pos)
}
