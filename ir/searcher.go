package ir

import "slices"

// MatchFunc decides whether a node is a search target.
type MatchFunc func(*ConfigNode) bool

// Searcher sweeps a node list once, in order, checking out each node accepted
// by its MatchFunc.
//
// At most one node of the list is checked out at a time. A checked out node is
// owned by the caller, its slot left as a hole, until the [Checkout] returned
// by [Searcher.Search] is resolved with [Checkout.Replace] or
// [Checkout.Delete]. The sweep covers the nodes present when the Searcher was
// created; nodes added with [Searcher.Push] are not visited.
type Searcher struct {
	nodes  *NodeList
	match  MatchFunc
	next   int
	end    int
	active *Checkout
}

func NewSearcher(nodes *NodeList, match MatchFunc) *Searcher {
	return &Searcher{
		nodes: nodes,
		match: match,
		end:   len(*nodes),
	}
}

// Search checks out the next matching node. It returns a nil Checkout when
// the sweep is exhausted.
func (s *Searcher) Search() (*Checkout, *ConfigNode, error) {
	if s.active != nil {
		return nil, nil, internalErr("search with node %d still checked out", s.active.idx)
	}
	list := *s.nodes
	for s.next < s.end {
		i := s.next
		s.next++
		node := list[i]
		if node == nil {
			return nil, nil, internalErr("hole at slot %d while searching", i)
		}
		if !s.match(node) {
			continue
		}
		list[i] = nil
		s.active = &Checkout{s: s, idx: i}
		return s.active, node, nil
	}
	return nil, nil, nil
}

// Push appends a new node at the end of the list. It may be called whether
// or not a node is checked out.
func (s *Searcher) Push(node *ConfigNode) error {
	if node == nil {
		return internalErr("push of nil node")
	}
	*s.nodes = append(*s.nodes, node)
	return nil
}

// Checkout is the handle of a checked out node. It is only produced by
// [Searcher.Search] and must be resolved exactly once.
type Checkout struct {
	s   *Searcher
	idx int
}

func (c *Checkout) check() error {
	if c == nil || c.s == nil {
		return internalErr("use of invalid checkout")
	}
	if c.s.active != c {
		return internalErr("checkout of slot %d already resolved", c.idx)
	}
	if (*c.s.nodes)[c.idx] != nil {
		return internalErr("element marked active is not active")
	}
	return nil
}

// Replace returns node, possibly modified, to the checked out slot.
func (c *Checkout) Replace(node *ConfigNode) error {
	if err := c.check(); err != nil {
		return err
	}
	if node == nil {
		return internalErr("cannot replace slot %d with nil", c.idx)
	}
	(*c.s.nodes)[c.idx] = node
	c.s.active = nil
	return nil
}

// Delete removes the checked out slot.
func (c *Checkout) Delete() error {
	if err := c.check(); err != nil {
		return err
	}
	*c.s.nodes = slices.Delete(*c.s.nodes, c.idx, c.idx+1)
	c.s.next--
	c.s.end--
	c.s.active = nil
	return nil
}
