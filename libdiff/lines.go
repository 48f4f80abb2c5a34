package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

type Line struct {
	Op   Op
	Text string
}

// Lines diffs from and to line by line.
func Lines(from, to string) []Line {
	lineMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapLinesTo(lineMap, runeMap, from)
	toRunes := mapLinesTo(lineMap, runeMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	var res []Line
	for i := range diffs {
		diff := &diffs[i]
		op := Equal
		switch diff.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, r := range diff.Text {
			res = append(res, Line{Op: op, Text: runeMap[r]})
		}
	}
	return res
}

// mapLinesTo assigns each distinct line a rune from the private use area.
func mapLinesTo(lineMap map[string]rune, runeMap map[rune]string, s string) []rune {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	res := make([]rune, len(lines))
	for i, ln := range lines {
		r, ok := lineMap[ln]
		if !ok {
			r = rune(0xF0000 + len(lineMap))
			lineMap[ln] = r
			runeMap[r] = ln
		}
		res[i] = r
	}
	return res
}

// Changed reports whether any line differs.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Op != Equal {
			return true
		}
	}
	return false
}

// Text renders a line diff, keeping context unchanged lines around each
// change. A negative context keeps every line. The result is empty when
// from and to are equal.
func Text(from, to string, context int) string {
	lines := Lines(from, to)
	if !Changed(lines) {
		return ""
	}
	keep := make([]bool, len(lines))
	for i, ln := range lines {
		if ln.Op == Equal && context >= 0 {
			continue
		}
		lo, hi := i-context, i+context
		if context < 0 {
			lo, hi = i, i
		}
		for j := max(lo, 0); j <= hi && j < len(lines); j++ {
			keep[j] = true
		}
	}
	var b strings.Builder
	skipped := false
	for i, ln := range lines {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			b.WriteString("...\n")
			skipped = false
		}
		b.WriteString(ln.Op.Prefix() + " " + ln.Text + "\n")
	}
	if skipped {
		b.WriteString("...\n")
	}
	return b.String()
}
