package parse

import (
	"strconv"
	"strings"

	"github.com/signadot/cfgpatch/pass"
	"github.com/signadot/cfgpatch/token"
)

// Operator is the prefix of a node or key statement.
type Operator int

const (
	OpNone Operator = iota
	OpEdit
	OpEditOrCreate
	OpCreateIfNotFound
	OpCopy
	OpDelete
	OpDeleteAlt
	OpRename
)

var operators = map[byte]Operator{
	'@': OpEdit,
	'%': OpEditOrCreate,
	'&': OpCreateIfNotFound,
	'+': OpCopy,
	'$': OpCopy,
	'-': OpDelete,
	'!': OpDeleteAlt,
	'|': OpRename,
}

func (o Operator) String() string {
	s, ok := map[Operator]string{
		OpNone:             "",
		OpEdit:             "@",
		OpEditOrCreate:     "%",
		OpCreateIfNotFound: "&",
		OpCopy:             "+",
		OpDelete:           "-",
		OpDeleteAlt:        "!",
		OpRename:           "|",
	}[o]
	if ok {
		return s
	}
	return "<unknown operator>"
}

// AssignOp is the operator of a key assignment.
type AssignOp int

const (
	AssignSet AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignPow
	AssignRegex
)

var assignOps = map[string]AssignOp{
	"":  AssignSet,
	"+": AssignAdd,
	"-": AssignSub,
	"*": AssignMul,
	"/": AssignDiv,
	"!": AssignPow,
	"^": AssignRegex,
}

func (a AssignOp) String() string {
	for k, v := range assignOps {
		if v == a {
			return k + "="
		}
	}
	return "<unknown assignment>"
}

// Index selects one match by ordinal, or all matches.
type Index struct {
	All bool
	N   int
}

func (x Index) String() string {
	if x.All {
		return "*"
	}
	return strconv.Itoa(x.N)
}

// ModClause is one term of a :NEEDS clause.
type ModClause struct {
	Name    string
	Negated bool
}

// OrClause is satisfied when any of its terms is.
type OrClause struct {
	Mods []ModClause
}

func (o OrClause) String() string {
	parts := make([]string, len(o.Mods))
	for i, m := range o.Mods {
		if m.Negated {
			parts[i] = "!" + m.Name
			continue
		}
		parts[i] = m.Name
	}
	return strings.Join(parts, "|")
}

type HasKind int

const (
	HasNode HasKind = iota
	HasNoNode
	HasKey
	HasNoKey
)

// HasPredicate is one term of a :HAS clause.
type HasPredicate struct {
	Kind  HasKind
	Ident string
	// Value is the bracketed name filter (for nodes) or value filter (for
	// keys), nil when absent.
	Value *string
	Has   []HasPredicate
}

// PathSegment is one step of a copy-from path.
type PathSegment struct {
	Up    bool
	Ident string
	Name  *string
}

// Path locates a copy-from source. Absolute paths start at the top-level
// list, others at the node being patched.
type Path struct {
	Absolute bool
	Segments []PathSegment
}

func (p *Path) String() string {
	var b strings.Builder
	if p.Absolute {
		b.WriteByte('@')
	}
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteByte('/')
		}
		if seg.Up {
			b.WriteString("..")
			continue
		}
		b.WriteString(seg.Ident)
		if seg.Name != nil {
			b.WriteString("[" + *seg.Name + "]")
		}
	}
	return b.String()
}

// Item is a statement in a block: *Node, *KeyVal, *Comment or *EmptyLine.
type Item interface {
	item()
}

type Node struct {
	Operator   Operator
	Path       *Path
	Identifier string
	Name       *string
	Has        []HasPredicate
	Needs      []OrClause
	Pass       pass.Pass
	Index      *Index
	Block      []Item
	Pos        token.Pos
}

type KeyVal struct {
	Operator Operator
	Key      string
	Needs    []OrClause
	Index    *Index
	Assign   AssignOp
	Value    string
	Pos      token.Pos
}

type Comment struct {
	Text string
	Pos  token.Pos
}

type EmptyLine struct{}

func (*Node) item()      {}
func (*KeyVal) item()    {}
func (*Comment) item()   {}
func (*EmptyLine) item() {}

type Document struct {
	Items []Item
}

// Nodes returns the node statements of a block.
func Nodes(items []Item) []*Node {
	var res []*Node
	for _, it := range items {
		if n, ok := it.(*Node); ok {
			res = append(res, n)
		}
	}
	return res
}
