package token

import (
	"fmt"
	"sort"
)

// Pos is a position in a document. Line and Col are 1-based.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, col %d", p.Line, p.Col)
}

// PosDoc maps offsets to positions.
type PosDoc struct {
	starts []int
}

func NewPosDoc(d []byte) *PosDoc {
	res := &PosDoc{starts: []int{0}}
	for i, c := range d {
		if c == '\n' {
			res.starts = append(res.starts, i+1)
		}
	}
	return res
}

func (p *PosDoc) Pos(off int) Pos {
	li := sort.Search(len(p.starts), func(i int) bool {
		return p.starts[i] > off
	}) - 1
	if li < 0 {
		li = 0
	}
	return Pos{
		Offset: off,
		Line:   li + 1,
		Col:    off - p.starts[li] + 1,
	}
}
