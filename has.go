package cfgpatch

import (
	"github.com/signadot/cfgpatch/ir"
	"github.com/signadot/cfgpatch/parse"
)

func hasAll(node *ir.ConfigNode, preds []parse.HasPredicate) bool {
	for i := range preds {
		if !has(node, &preds[i]) {
			return false
		}
	}
	return true
}

// has evaluates a predicate against the direct children and keys of node.
func has(node *ir.ConfigNode, pred *parse.HasPredicate) bool {
	switch pred.Kind {
	case parse.HasNode:
		return hasChild(node, pred)
	case parse.HasNoNode:
		return !hasChild(node, pred)
	case parse.HasKey:
		return hasKey(node, pred)
	case parse.HasNoKey:
		return !hasKey(node, pred)
	}
	return false
}

func hasChild(node *ir.ConfigNode, pred *parse.HasPredicate) bool {
	f := NewNameFilter(pred.Value)
	for _, child := range node.Nodes {
		if child == nil || child.Ident != pred.Ident {
			continue
		}
		if f.MatchNode(child) && hasAll(child, pred.Has) {
			return true
		}
	}
	return false
}

func hasKey(node *ir.ConfigNode, pred *parse.HasPredicate) bool {
	for _, k := range node.Keys {
		if k.Ident != pred.Ident {
			continue
		}
		if pred.Value == nil || globMatch(*pred.Value, k.Value) {
			return true
		}
	}
	return false
}
