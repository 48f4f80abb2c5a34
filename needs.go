package cfgpatch

import (
	"slices"
	"strings"

	"github.com/signadot/cfgpatch/debug"
	"github.com/signadot/cfgpatch/parse"
)

// Declared is the set of existing pass identifiers.
type Declared map[string]struct{}

func NewDeclared(ids ...string) Declared {
	d := Declared{}
	for _, id := range ids {
		d.Add(id)
	}
	return d
}

func (d Declared) Add(id string) { d[id] = struct{}{} }

func (d Declared) Has(id string) bool {
	_, ok := d[id]
	return ok
}

func (d Declared) Sorted() []string {
	res := make([]string, 0, len(d))
	for id := range d {
		res = append(res, id)
	}
	slices.Sort(res)
	return res
}

// Needs is a conjunction of disjunctions over declared passes.
type Needs []parse.OrClause

// Satisfied reports whether every clause has a term whose negation differs
// from the presence of its mod in declared. A sub-scoped name anywhere in n
// is an error, even in a clause decided by another term.
func (n Needs) Satisfied(declared Declared) (bool, error) {
	for _, or := range n {
		for _, m := range or.Mods {
			if strings.Contains(m.Name, "/") {
				return false, internalErr("not implemented: :NEEDS on sub-scoped name %q", m.Name)
			}
		}
	}
	for _, or := range n {
		ok := false
		for _, m := range or.Mods {
			if m.Negated != declared.Has(m.Name) {
				ok = true
				break
			}
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (n Needs) String() string {
	parts := make([]string, len(n))
	for i, or := range n {
		parts[i] = or.String()
	}
	return strings.Join(parts, ",")
}

// pruneNeeds returns a copy of p without the nodes and keys whose needs
// fail, or nil if p's own needs fail.
func pruneNeeds(p *NodePatch, declared Declared) (*NodePatch, error) {
	ok, err := p.Needs.Satisfied(declared)
	if err != nil {
		return nil, err
	}
	if !ok {
		if debug.Needs() {
			debug.Logf("pruning %s%s at %s: needs %s\n", p.Ident, nameSuffix(p.TargetName), p.Pos, p.Needs)
		}
		return nil, nil
	}
	res := p.shallow()
	for _, child := range p.Nodes {
		c, err := pruneNeeds(child, declared)
		if err != nil {
			return nil, err
		}
		if c != nil {
			res.Nodes = append(res.Nodes, c)
		}
	}
	for _, k := range p.Keys {
		ok, err := k.Needs.Satisfied(declared)
		if err != nil {
			return nil, err
		}
		if ok {
			res.Keys = append(res.Keys, k)
		}
	}
	return res, nil
}

func nameSuffix(name *string) string {
	if name == nil {
		return ""
	}
	return "[" + *name + "]"
}
