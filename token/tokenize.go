package token

import (
	"bytes"
	"strings"
)

var bom = []byte{0xef, 0xbb, 0xbf}

// assignOps are the characters which, directly preceding '=', form a
// compound assignment.
const assignOps = "+-*/!^"

type tokenizer struct {
	d    []byte
	i    int
	pd   *PosDoc
	toks []Token
}

// Tokenize appends the tokens of src to dst. The result always ends with a
// TEOF token.
func Tokenize(dst []Token, src []byte) ([]Token, error) {
	src = bytes.TrimPrefix(src, bom)
	tk := &tokenizer{
		d:    src,
		pd:   NewPosDoc(src),
		toks: dst,
	}
	if err := tk.run(); err != nil {
		return nil, err
	}
	return tk.toks, nil
}

func (tk *tokenizer) emit(t Type, text string, off int) {
	tk.toks = append(tk.toks, Token{Type: t, Text: text, Pos: tk.pd.Pos(off)})
}

func (tk *tokenizer) isComment(i int) bool {
	return i+1 < len(tk.d) && tk.d[i] == '/' && tk.d[i+1] == '/'
}

func (tk *tokenizer) run() error {
	d := tk.d
	for tk.i < len(d) {
		c := d[tk.i]
		switch {
		case c == '\n':
			tk.emit(TNewline, "", tk.i)
			tk.i++
		case c == ' ' || c == '\t' || c == '\r':
			tk.i++
		case tk.isComment(tk.i):
			start := tk.i
			end := bytes.IndexByte(d[start:], '\n')
			if end < 0 {
				end = len(d)
			} else {
				end += start
			}
			tk.emit(TComment, strings.TrimSpace(string(d[start+2:end])), start)
			tk.i = end
		case c == '{':
			tk.emit(TOpen, "{", tk.i)
			tk.i++
		case c == '}':
			tk.emit(TClose, "}", tk.i)
			tk.i++
		default:
			if err := tk.statement(); err != nil {
				return err
			}
		}
	}
	tk.emit(TEOF, "", len(d))
	return nil
}

// statement reads statement text, which may be followed by an assignment and
// a value. Inside brackets braces, '=' and "//" are literal.
func (tk *tokenizer) statement() error {
	d := tk.d
	start := tk.i
	depth := 0
	var openAt int
	i := start
scan:
	for ; i < len(d); i++ {
		c := d[i]
		if depth > 0 {
			switch c {
			case '[':
				depth++
			case ']':
				depth--
			case '\n':
				return NewTokenizeErr(ErrUnterminated, tk.pd.Pos(openAt))
			}
			continue
		}
		switch {
		case c == '[':
			depth++
			openAt = i
		case c == ']':
			return UnexpectedErr("']'", tk.pd.Pos(i))
		case c == '\n' || c == '{' || c == '}' || c == '=':
			break scan
		case tk.isComment(i):
			break scan
		}
	}
	if depth > 0 {
		return NewTokenizeErr(ErrUnterminated, tk.pd.Pos(openAt))
	}
	end := i
	op := ""
	isAssign := i < len(d) && d[i] == '='
	if isAssign && end > start && strings.IndexByte(assignOps, d[end-1]) >= 0 {
		op = string(d[end-1])
		end--
	}
	text := strings.TrimSpace(string(d[start:end]))
	if text == "" {
		return NewTokenizeErr(ErrEmptyText, tk.pd.Pos(start))
	}
	tk.emit(TText, text, start)
	tk.i = i
	if !isAssign {
		return nil
	}
	tk.emit(TAssign, op, end)
	tk.i++
	tk.value()
	return nil
}

// value reads the remainder of the line up to a comment or a closing brace.
func (tk *tokenizer) value() {
	d := tk.d
	for tk.i < len(d) && (d[tk.i] == ' ' || d[tk.i] == '\t') {
		tk.i++
	}
	start := tk.i
	i := start
	for ; i < len(d); i++ {
		c := d[i]
		if c == '\n' || c == '}' || tk.isComment(i) {
			break
		}
	}
	tk.emit(TValue, strings.TrimSpace(string(d[start:i])), start)
	tk.i = i
}
