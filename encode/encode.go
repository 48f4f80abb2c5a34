package encode

import (
	"io"
	"strings"

	"github.com/signadot/cfgpatch/ir"
)

// URLNode and URLKey name the node wrapping each top-level node and the key
// recording its origin.
const (
	URLNode = "UrlConfig"
	URLKey  = "parentUrl"
)

type EncState struct {
	depth  int
	indent string
	urls   bool
	Color  func(ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{indent: "\t", urls: true}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes every top-level node of db, sorted by origin file.
func Encode(db *ir.Database, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	for _, node := range db.Sorted() {
		if !es.urls {
			if err := encodeNode(node, w, es); err != nil {
				return err
			}
			continue
		}
		wrap := &ir.ConfigNode{
			Ident: URLNode,
			Keys:  []ir.ConfigKey{{Ident: URLKey, Value: node.File}},
			Nodes: ir.NodeList{node},
		}
		if err := encodeNode(wrap, w, es); err != nil {
			return err
		}
	}
	return nil
}

// EncodeNode writes node and its descendants.
func EncodeNode(node *ir.ConfigNode, w io.Writer, opts ...EncodeOption) error {
	return encodeNode(node, w, newState(opts))
}

func encodeNode(node *ir.ConfigNode, w io.Writer, es *EncState) error {
	pre := strings.Repeat(es.indent, es.depth)
	if err := writeString(w, pre+es.color(IdentColor, node.Ident)+"\n"); err != nil {
		return err
	}
	if err := writeString(w, pre+es.color(BraceColor, "{")+"\n"); err != nil {
		return err
	}
	es.depth++
	inner := pre + es.indent
	for _, k := range node.Keys {
		attr := ValueColor
		if node.Ident == URLNode && k.Ident == URLKey {
			attr = URLColor
		}
		ln := inner + es.color(KeyColor, k.Ident) + " " + es.color(SepColor, "=") + " " + es.color(attr, k.Value) + "\n"
		if err := writeString(w, ln); err != nil {
			return err
		}
	}
	for _, c := range node.Nodes {
		if c == nil {
			continue
		}
		if err := encodeNode(c, w, es); err != nil {
			return err
		}
	}
	es.depth--
	return writeString(w, pre+es.color(BraceColor, "}")+"\n")
}

func (es *EncState) color(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
