package cfgpatch

import (
	"github.com/signadot/cfgpatch/ir"
	"github.com/signadot/cfgpatch/parse"
)

// frame is a position while resolving a copy-from path. level 0 is the
// database, level i+1 is parents[i], and -1 is a node off the stack.
type frame struct {
	node  *ir.ConfigNode
	level int
}

// children returns the child list of f and the node standing in for a hole
// in it, which is the checked out ancestor one level down.
func (p *Patcher) children(f frame) (ir.NodeList, frame) {
	var hole frame
	if f.level >= 0 && f.level < len(p.parents) {
		hole = frame{node: p.parents[f.level], level: f.level + 1}
	}
	if f.level == 0 {
		return p.db.Nodes, hole
	}
	return f.node.Nodes, hole
}

// resolve finds the source of a copy-from and returns a detached copy of it.
func (p *Patcher) resolve(path *parse.Path) (*ir.ConfigNode, error) {
	cur := frame{level: 0}
	if !path.Absolute {
		cur = frame{node: p.parents[len(p.parents)-1], level: len(p.parents)}
	}
	// trail holds the frames descended from, for going back up out of
	// nodes which are not on the stack.
	var trail []frame
	for _, seg := range path.Segments {
		if seg.Up {
			switch {
			case len(trail) > 0:
				cur = trail[len(trail)-1]
				trail = trail[:len(trail)-1]
			case cur.level == 1:
				cur = frame{level: 0}
			case cur.level > 1:
				cur = frame{node: p.parents[cur.level-2], level: cur.level - 1}
			default:
				return nil, runtimeErr(CopyFromNotFound, "%s has no parent to go up to", path)
			}
			continue
		}
		list, hole := p.children(cur)
		filter := NewNameFilter(seg.Name)
		found := false
		for _, c := range list {
			next := frame{node: c, level: -1}
			if c == nil {
				if hole.node == nil {
					return nil, internalErr("hole without a checked out ancestor resolving %s", path)
				}
				next = hole
			}
			if next.node.Ident == seg.Ident && filter.MatchNode(next.node) {
				trail = append(trail, cur)
				cur = next
				found = true
				break
			}
		}
		if !found {
			return nil, runtimeErr(CopyFromNotFound, "%s", path)
		}
	}
	if cur.node == nil {
		return nil, runtimeErr(CopyFromNotFound, "%s", path)
	}
	res := p.snapshot(cur)
	res.File = ""
	return res, nil
}

// snapshot deep copies f's node, filling holes with copies of the checked
// out ancestors.
func (p *Patcher) snapshot(f frame) *ir.ConfigNode {
	res := f.node.Clone()
	if f.level < 0 {
		return res
	}
	_, hole := p.children(f)
	for i, c := range res.Nodes {
		if c == nil && hole.node != nil {
			res.Nodes[i] = p.snapshot(hole)
		}
	}
	return res
}
