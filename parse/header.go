package parse

import (
	"strconv"
	"strings"

	"github.com/signadot/cfgpatch/pass"
	"github.com/signadot/cfgpatch/token"
)

// hdr scans the text of a statement header.
type hdr struct {
	s   string
	i   int
	pos token.Pos
}

func (h *hdr) eof() bool { return h.i >= len(h.s) }

func (h *hdr) peek() byte {
	if h.eof() {
		return 0
	}
	return h.s[h.i]
}

// until reads up to the first depth-0 occurrence of any byte in stops.
func (h *hdr) until(stops string) string {
	start := h.i
	depth := 0
	for ; h.i < len(h.s); h.i++ {
		c := h.s[h.i]
		if depth == 0 && strings.IndexByte(stops, c) >= 0 {
			break
		}
		switch c {
		case '[':
			depth++
		case ']':
			depth--
		}
	}
	return h.s[start:h.i]
}

// bracket reads a balanced "[...]" and returns its content.
func (h *hdr) bracket() (string, error) {
	if h.peek() != '[' {
		return "", errAt(h.pos, ErrHeader, "expected '[' in %q", h.s)
	}
	start := h.i + 1
	depth := 0
	for ; h.i < len(h.s); h.i++ {
		switch h.s[h.i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				h.i++
				return h.s[start : h.i-1], nil
			}
		}
	}
	return "", errAt(h.pos, ErrHeader, "unterminated '[' in %q", h.s)
}

func parseNodeHeader(text string, pos token.Pos) (*Node, error) {
	h := &hdr{s: text, pos: pos}
	n := &Node{Pos: pos}
	if h.peek() == '#' {
		h.i++
		p, err := parsePath(h.until(":,"), pos)
		if err != nil {
			return nil, err
		}
		n.Path = p
		last := p.Segments[len(p.Segments)-1]
		n.Identifier = last.Ident
		n.Name = last.Name
	} else {
		if op, ok := operators[h.peek()]; ok {
			n.Operator = op
			h.i++
		}
		n.Identifier = strings.TrimSpace(h.until("[:,"))
		if n.Identifier == "" {
			return nil, errAt(pos, ErrHeader, "missing identifier in %q", text)
		}
		if h.peek() == '[' {
			name, err := h.bracket()
			if err != nil {
				return nil, err
			}
			n.Name = &name
		}
	}
	hasPass := false
	for h.peek() == ':' {
		h.i++
		kw := strings.TrimSpace(h.until("[:,"))
		arg := ""
		bracketed := h.peek() == '['
		if bracketed {
			var err error
			arg, err = h.bracket()
			if err != nil {
				return nil, err
			}
		}
		switch strings.ToUpper(kw) {
		case "HAS":
			if !bracketed {
				return nil, errAt(pos, ErrHas, "missing '[' in %q", text)
			}
			has, err := parseHas(arg, pos)
			if err != nil {
				return nil, err
			}
			n.Has = append(n.Has, has...)
		case "NEEDS":
			if !bracketed {
				return nil, errAt(pos, ErrNeeds, "missing '[' in %q", text)
			}
			needs, err := parseNeeds(arg, pos)
			if err != nil {
				return nil, err
			}
			n.Needs = append(n.Needs, needs...)
		default:
			if hasPass {
				return nil, errAt(pos, ErrHeader, "more than one pass in %q", text)
			}
			clause := kw
			if bracketed {
				clause += "[" + arg + "]"
			}
			p, err := pass.Parse(clause)
			if err != nil {
				return nil, errAt(pos, err, "in %q", text)
			}
			n.Pass = p
			hasPass = true
		}
	}
	if h.peek() == ',' {
		h.i++
		idx, err := parseIndex(h.s[h.i:], pos)
		if err != nil {
			return nil, err
		}
		n.Index = idx
		h.i = len(h.s)
	}
	if !h.eof() {
		return nil, errAt(pos, ErrHeader, "unexpected %q in %q", h.s[h.i:], text)
	}
	return n, nil
}

func parseKeyHeader(text string, pos token.Pos) (*KeyVal, error) {
	h := &hdr{s: text, pos: pos}
	kv := &KeyVal{Pos: pos}
	switch c := h.peek(); c {
	case '#', '*':
		return nil, errAt(pos, ErrUnsupported, "key operator %q", string(c))
	}
	if op, ok := operators[h.peek()]; ok {
		kv.Operator = op
		h.i++
	}
	kv.Key = strings.TrimSpace(h.until("[:,"))
	if kv.Key == "" {
		return nil, errAt(pos, ErrHeader, "missing key in %q", text)
	}
	for !h.eof() {
		switch h.peek() {
		case '[':
			return nil, errAt(pos, ErrUnsupported, "array index in %q", text)
		case ',':
			if kv.Index != nil {
				return nil, errAt(pos, ErrIndex, "more than one index in %q", text)
			}
			h.i++
			idx, err := parseIndex(h.until(":"), pos)
			if err != nil {
				return nil, err
			}
			kv.Index = idx
		case ':':
			h.i++
			kw := strings.TrimSpace(h.until("[:,"))
			if pass.IsKeyword(kw) {
				return nil, errAt(pos, ErrHeader, "pass :%s on key %q", kw, text)
			}
			if !strings.EqualFold(kw, "NEEDS") {
				return nil, errAt(pos, ErrHeader, "unexpected :%s on key %q", kw, text)
			}
			arg, err := h.bracket()
			if err != nil {
				return nil, err
			}
			needs, err := parseNeeds(arg, pos)
			if err != nil {
				return nil, err
			}
			kv.Needs = append(kv.Needs, needs...)
		default:
			return nil, errAt(pos, ErrHeader, "unexpected %q in %q", h.s[h.i:], text)
		}
	}
	return kv, nil
}

func parseIndex(s string, pos token.Pos) (*Index, error) {
	s = strings.TrimSpace(s)
	if s == "*" {
		return &Index{All: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, errAt(pos, ErrIndex, "%q", s)
	}
	return &Index{N: n}, nil
}

// parseNeeds parses the content of :NEEDS[...]. Groups are separated by ','
// or '&', alternatives by '|'.
func parseNeeds(s string, pos token.Pos) ([]OrClause, error) {
	var res []OrClause
	for _, group := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '&' }) {
		var or OrClause
		for _, alt := range strings.Split(group, "|") {
			alt = strings.TrimSpace(alt)
			m := ModClause{}
			if strings.HasPrefix(alt, "!") {
				m.Negated = true
				alt = strings.TrimSpace(alt[1:])
			}
			if alt == "" {
				return nil, errAt(pos, ErrNeeds, "empty mod in %q", s)
			}
			m.Name = alt
			or.Mods = append(or.Mods, m)
		}
		res = append(res, or)
	}
	if len(res) == 0 {
		return nil, errAt(pos, ErrNeeds, "empty clause")
	}
	return res, nil
}

// parseHas parses the content of :HAS[...].
func parseHas(s string, pos token.Pos) ([]HasPredicate, error) {
	h := &hdr{s: s, pos: pos}
	var res []HasPredicate
	for !h.eof() {
		part := strings.TrimSpace(h.until(","))
		if !h.eof() {
			h.i++
		}
		if part == "" {
			return nil, errAt(pos, ErrHas, "empty predicate in %q", s)
		}
		pred, err := parseHasPredicate(part, pos)
		if err != nil {
			return nil, err
		}
		res = append(res, pred)
	}
	if len(res) == 0 {
		return nil, errAt(pos, ErrHas, "empty clause")
	}
	return res, nil
}

func parseHasPredicate(s string, pos token.Pos) (HasPredicate, error) {
	var pred HasPredicate
	switch s[0] {
	case '@':
		pred.Kind = HasNode
	case '!':
		pred.Kind = HasNoNode
	case '#':
		pred.Kind = HasKey
	case '~':
		pred.Kind = HasNoKey
	default:
		return pred, errAt(pos, ErrHas, "unknown predicate %q", s)
	}
	h := &hdr{s: s, i: 1, pos: pos}
	pred.Ident = strings.TrimSpace(h.until("[:"))
	if pred.Ident == "" {
		return pred, errAt(pos, ErrHas, "missing identifier in %q", s)
	}
	if h.peek() == '[' {
		v, err := h.bracket()
		if err != nil {
			return pred, err
		}
		pred.Value = &v
	}
	if h.peek() == ':' {
		h.i++
		kw := strings.TrimSpace(h.until("["))
		if !strings.EqualFold(kw, "HAS") || pred.Kind != HasNode && pred.Kind != HasNoNode {
			return pred, errAt(pos, ErrHas, "unexpected :%s in %q", kw, s)
		}
		arg, err := h.bracket()
		if err != nil {
			return pred, err
		}
		pred.Has, err = parseHas(arg, pos)
		if err != nil {
			return pred, err
		}
	}
	if !h.eof() {
		return pred, errAt(pos, ErrHas, "unexpected %q in %q", s[h.i:], s)
	}
	return pred, nil
}

// parsePath parses a copy-from path such as "@PART[a]/MODULE[b]" or
// "../MODULE[b]".
func parsePath(s string, pos token.Pos) (*Path, error) {
	p := &Path{}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "@") {
		p.Absolute = true
		s = s[1:]
	}
	h := &hdr{s: s, pos: pos}
	for !h.eof() {
		seg := strings.TrimSpace(h.until("/"))
		if !h.eof() {
			h.i++
		}
		switch {
		case seg == "":
			return nil, errAt(pos, ErrHeader, "empty path segment in %q", s)
		case seg == "..":
			if p.Absolute {
				return nil, errAt(pos, ErrHeader, "'..' in absolute path %q", s)
			}
			p.Segments = append(p.Segments, PathSegment{Up: true})
			continue
		}
		sh := &hdr{s: seg, pos: pos}
		ps := PathSegment{Ident: strings.TrimSpace(sh.until("["))}
		if sh.peek() == '[' {
			name, err := sh.bracket()
			if err != nil {
				return nil, err
			}
			ps.Name = &name
		}
		if ps.Ident == "" || !sh.eof() {
			return nil, errAt(pos, ErrHeader, "bad path segment %q", seg)
		}
		p.Segments = append(p.Segments, ps)
	}
	if len(p.Segments) == 0 || p.Segments[len(p.Segments)-1].Up {
		return nil, errAt(pos, ErrHeader, "path %q does not name a node", s)
	}
	return p, nil
}
