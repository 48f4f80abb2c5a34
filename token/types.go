package token

type Type int

const (
	TNewline Type = iota
	TComment
	TOpen
	TClose
	TText
	TAssign
	TValue
	TEOF
)

func (t Type) String() string {
	s, ok := map[Type]string{
		TNewline: "newline",
		TComment: "comment",
		TOpen:    "'{'",
		TClose:   "'}'",
		TText:    "text",
		TAssign:  "assignment",
		TValue:   "value",
		TEOF:     "end of document",
	}[t]
	if ok {
		return s
	}
	return "<unknown token type>"
}

// Token is a lexical element.
//
// For TText, TValue and TComment, Text holds the trimmed content. For TAssign
// it holds the operator preceding '=', such as "+" for "+=", or "" for a
// plain assignment.
type Token struct {
	Type Type
	Text string
	Pos  Pos
}
