// Package parse provides parsing of ModuleManager style patch documents.
package parse

import (
	"os"

	"github.com/signadot/cfgpatch/debug"
	"github.com/signadot/cfgpatch/token"
)

func Parse(d []byte, opts ...ParseOption) (*Document, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	toks, err := token.Tokenize(nil, d)
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		token.PrintTokens(os.Stderr, toks, "parse")
	}
	off := 0
	items, err := parseBlock(toks, &off, true, pOpts)
	if err != nil {
		return nil, err
	}
	return &Document{Items: items}, nil
}

func parseBlock(toks []token.Token, pi *int, top bool, opts *parseOpts) ([]Item, error) {
	var (
		res []Item
		nls int
	)
	for {
		tok := &toks[*pi]
		if tok.Type != token.TNewline {
			nls = 0
		}
		switch tok.Type {
		case token.TEOF:
			if !top {
				return nil, errAt(tok.Pos, ErrParse, "missing '}'")
			}
			return res, nil
		case token.TClose:
			if top {
				return nil, errAt(tok.Pos, ErrParse, "unexpected '}'")
			}
			*pi++
			return res, nil
		case token.TNewline:
			nls++
			if nls == 2 && opts.comments {
				res = append(res, &EmptyLine{})
			}
			*pi++
		case token.TComment:
			if opts.comments {
				res = append(res, &Comment{Text: tok.Text, Pos: tok.Pos})
			}
			*pi++
		case token.TText:
			if toks[*pi+1].Type == token.TAssign {
				kv, err := parseKeyVal(toks, pi)
				if err != nil {
					return nil, err
				}
				res = append(res, kv)
				continue
			}
			node, err := parseNode(toks, pi, opts)
			if err != nil {
				return nil, err
			}
			res = append(res, node)
		default:
			return nil, errAt(tok.Pos, ErrParse, "unexpected %s", tok.Type)
		}
	}
}

func parseKeyVal(toks []token.Token, pi *int) (*KeyVal, error) {
	text, assign, val := toks[*pi], toks[*pi+1], toks[*pi+2]
	kv, err := parseKeyHeader(text.Text, text.Pos)
	if err != nil {
		return nil, err
	}
	op, ok := assignOps[assign.Text]
	if !ok {
		return nil, errAt(assign.Pos, ErrParse, "unknown assignment %q", assign.Text+"=")
	}
	kv.Assign = op
	kv.Value = val.Text
	*pi += 3
	if debug.Parse() {
		debug.Logf("key %s%s %s %q\n", kv.Operator, kv.Key, kv.Assign, kv.Value)
	}
	return kv, nil
}

func parseNode(toks []token.Token, pi *int, opts *parseOpts) (*Node, error) {
	text := toks[*pi]
	node, err := parseNodeHeader(text.Text, text.Pos)
	if err != nil {
		return nil, err
	}
	*pi++
	for {
		tok := &toks[*pi]
		switch tok.Type {
		case token.TNewline, token.TComment:
			*pi++
			continue
		case token.TOpen:
			*pi++
		default:
			return nil, errAt(tok.Pos, ErrParse, "expected '{' after %q", text.Text)
		}
		break
	}
	node.Block, err = parseBlock(toks, pi, false, opts)
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("node %q with %d items\n", text.Text, len(node.Block))
	}
	return node, nil
}
