// Package pass provides the ordering buckets that decide when a patch runs.
//
// A [Pass] is one of :FIRST, :BEFORE[mod], :FOR[mod], :AFTER[mod], :LAST[mod],
// :FINAL or the default (unannotated) pass. [Compare] gives the total order in
// which passes execute.
package pass

import (
	"cmp"
	"fmt"
	"strings"
)

// Identifier names a mod or logical group referenced by a pass.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

type Kind int

const (
	KindDefault Kind = iota
	KindFirst
	KindBefore
	KindFor
	KindAfter
	KindLast
	KindFinal
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindDefault: "DEFAULT",
		KindFirst:   "FIRST",
		KindBefore:  "BEFORE",
		KindFor:     "FOR",
		KindAfter:   "AFTER",
		KindLast:    "LAST",
		KindFinal:   "FINAL",
	}[k]
	if ok {
		return s
	}
	return "<unknown pass kind>"
}

// HasIdent reports whether passes of this kind carry an identifier.
func (k Kind) HasIdent() bool {
	switch k {
	case KindBefore, KindFor, KindAfter, KindLast:
		return true
	default:
		return false
	}
}

// Pass is comparable and may be used as a map key.
type Pass struct {
	Kind  Kind
	Ident Identifier
}

func Default() Pass { return Pass{Kind: KindDefault} }
func First() Pass   { return Pass{Kind: KindFirst} }
func Final() Pass   { return Pass{Kind: KindFinal} }

func Before(id string) Pass { return Pass{Kind: KindBefore, Ident: Identifier(id)} }
func For(id string) Pass    { return Pass{Kind: KindFor, Ident: Identifier(id)} }
func After(id string) Pass  { return Pass{Kind: KindAfter, Ident: Identifier(id)} }
func Last(id string) Pass   { return Pass{Kind: KindLast, Ident: Identifier(id)} }

func (p Pass) anchored() bool {
	switch p.Kind {
	case KindBefore, KindFor, KindAfter:
		return true
	}
	return false
}

// Compare orders passes by execution order.
//
// :BEFORE, :FOR and :AFTER passes are ordered by identifier first, so that
// all passes about one mod run together, and then by kind. :LAST passes are
// ordered by identifier only. Everything else is ordered by kind.
func Compare(a, b Pass) int {
	switch {
	case a.anchored() && b.anchored():
		if c := strings.Compare(string(a.Ident), string(b.Ident)); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	case a.Kind == KindLast && b.Kind == KindLast:
		return strings.Compare(string(a.Ident), string(b.Ident))
	default:
		return cmp.Compare(a.Kind, b.Kind)
	}
}

func (p Pass) Less(o Pass) bool {
	return Compare(p, o) < 0
}

func (p Pass) String() string {
	switch p.Kind {
	case KindDefault:
		return ":<DEFAULT>"
	case KindFirst, KindFinal:
		return ":" + p.Kind.String()
	default:
		return fmt.Sprintf(":%s[%s]", p.Kind, p.Ident)
	}
}

// Parse parses a pass clause such as "FOR[MyMod]", with or without the
// leading colon. Keywords are case insensitive.
func Parse(s string) (Pass, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), ":")
	kw, arg, hasArg := strings.Cut(s, "[")
	if hasArg {
		if !strings.HasSuffix(arg, "]") {
			return Pass{}, fmt.Errorf("%w: unterminated pass %q", ErrPass, s)
		}
		arg = strings.TrimSpace(arg[:len(arg)-1])
	}
	var kind Kind
	switch strings.ToUpper(strings.TrimSpace(kw)) {
	case "FIRST":
		kind = KindFirst
	case "BEFORE":
		kind = KindBefore
	case "FOR":
		kind = KindFor
	case "AFTER":
		kind = KindAfter
	case "LAST":
		kind = KindLast
	case "FINAL":
		kind = KindFinal
	default:
		return Pass{}, fmt.Errorf("%w: unknown pass %q", ErrPass, s)
	}
	if kind.HasIdent() != hasArg {
		return Pass{}, fmt.Errorf("%w: bad argument for %s in %q", ErrPass, kind, s)
	}
	if hasArg && arg == "" {
		return Pass{}, fmt.Errorf("%w: empty identifier in %q", ErrPass, s)
	}
	return Pass{Kind: kind, Ident: Identifier(arg)}, nil
}

// IsKeyword reports whether s (without a leading colon or argument) names a
// pass kind.
func IsKeyword(s string) bool {
	kw, _, _ := strings.Cut(s, "[")
	switch strings.ToUpper(strings.TrimSpace(kw)) {
	case "FIRST", "BEFORE", "FOR", "AFTER", "LAST", "FINAL":
		return true
	}
	return false
}
