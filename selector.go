package cfgpatch

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/signadot/cfgpatch/debug"
	"github.com/signadot/cfgpatch/ir"
	"github.com/signadot/cfgpatch/parse"
)

// NameFilter matches the value of a node's name key.
type NameFilter struct {
	any  bool
	alts []string
}

// NewNameFilter builds a filter from a bracketed target name. A nil name or
// "*" accepts every node, with or without a name; otherwise the name must
// match one of the '|' separated alternatives, which may use wildcards.
func NewNameFilter(name *string) NameFilter {
	if name == nil || strings.TrimSpace(*name) == "*" {
		return NameFilter{any: true}
	}
	var alts []string
	for _, alt := range strings.Split(*name, "|") {
		alts = append(alts, strings.TrimSpace(alt))
	}
	return NameFilter{alts: alts}
}

func (f NameFilter) Any() bool { return f.any }

func (f NameFilter) Match(name string, ok bool) bool {
	if f.any {
		return true
	}
	if !ok {
		return false
	}
	for _, alt := range f.alts {
		if globMatch(alt, name) {
			return true
		}
	}
	return false
}

func (f NameFilter) MatchNode(node *ir.ConfigNode) bool {
	return f.Match(node.Name())
}

func (f NameFilter) String() string {
	if f.any {
		return "*"
	}
	return strings.Join(f.alts, "|")
}

func globMatch(pattern, s string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return pattern == s
	}
	ok, err := doublestar.Match(pattern, s)
	return err == nil && ok
}

// Selector decides which nodes of a list a node patch targets.
type Selector struct {
	Ident string
	Name  NameFilter
	Has   []parse.HasPredicate
	Needs Needs
	Index *parse.Index
}

func NewSelector(p *NodePatch) *Selector {
	return &Selector{
		Ident: p.Ident,
		Name:  NewNameFilter(p.TargetName),
		Has:   p.Has,
		Needs: p.Needs,
		Index: p.Index,
	}
}

// Matches reports whether node satisfies the selector's identifier, name
// and HAS predicates. The index is not considered.
func (s *Selector) Matches(node *ir.ConfigNode) bool {
	res := node.Ident == s.Ident && s.Name.MatchNode(node) && hasAll(node, s.Has)
	if debug.Match() {
		name, _ := node.Name()
		debug.Logf("match %s[%s] against %s[%s]: %t\n", s.Ident, s.Name, node.Ident, name, res)
	}
	return res
}

// Needle returns the match function of one sweep. With an index, only the
// n-th matching node of the sweep is accepted.
func (s *Selector) Needle() ir.MatchFunc {
	if s.Index == nil || s.Index.All {
		return s.Matches
	}
	seen := 0
	return func(node *ir.ConfigNode) bool {
		if !s.Matches(node) {
			return false
		}
		seen++
		return seen-1 == s.Index.N
	}
}
