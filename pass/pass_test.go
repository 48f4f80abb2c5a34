package pass

import (
	"errors"
	"slices"
	"testing"
)

func TestPassOrdering(t *testing.T) {
	if For("foo") != For("foo") {
		t.Error("FOR[foo] != FOR[foo]")
	}
	ordered := [][2]Pass{
		{Default(), First()},
		{First(), Before("foo")},
		{Before("foo"), For("foo")},
		{For("foo"), After("foo")},
		{After("foo"), Before("qux")},
		{After("zzz"), Last("aaa")},
		{Last("foo"), Last("qux")},
		{Last("foo"), Final()},
	}
	for _, pair := range ordered {
		a, b := pair[0], pair[1]
		if !a.Less(b) {
			t.Errorf("expected %s < %s", a, b)
		}
		if b.Less(a) {
			t.Errorf("expected not %s < %s", b, a)
		}
	}
}

func TestPassSort(t *testing.T) {
	in := []Pass{
		Final(),
		After("b"),
		Last("a"),
		For("a"),
		Default(),
		Before("b"),
		First(),
		After("a"),
		For("b"),
	}
	slices.SortFunc(in, Compare)
	want := []Pass{
		Default(),
		First(),
		For("a"),
		After("a"),
		Before("b"),
		For("b"),
		After("b"),
		Last("a"),
		Final(),
	}
	if !slices.Equal(in, want) {
		t.Errorf("got %v want %v", in, want)
	}
}

func TestPassParse(t *testing.T) {
	tests := []struct {
		in   string
		want Pass
		err  bool
	}{
		{in: ":FIRST", want: First()},
		{in: "final", want: Final()},
		{in: ":FOR[RealFuels]", want: For("RealFuels")},
		{in: ":before[ ModX ]", want: Before("ModX")},
		{in: ":LAST[zzz]", want: Last("zzz")},
		{in: ":AFTER[]", err: true},
		{in: ":FOR", err: true},
		{in: ":FIRST[x]", err: true},
		{in: ":SOMETIMES", err: true},
		{in: ":FOR[x", err: true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if tc.err {
			if !errors.Is(err, ErrPass) {
				t.Errorf("%q: expected ErrPass, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %s want %s", tc.in, got, tc.want)
		}
	}
}

func TestPassString(t *testing.T) {
	if s := Default().String(); s != ":<DEFAULT>" {
		t.Errorf("got %q", s)
	}
	if s := After("foo").String(); s != ":AFTER[foo]" {
		t.Errorf("got %q", s)
	}
	if s := Final().String(); s != ":FINAL" {
		t.Errorf("got %q", s)
	}
}

func TestIsKeyword(t *testing.T) {
	for _, s := range []string{"FIRST", "for[x]", " After[y]", "FINAL", "last"} {
		if !IsKeyword(s) {
			t.Errorf("%q: expected keyword", s)
		}
	}
	for _, s := range []string{"", "NEEDS[x]", "HAS", "DEFAULT", "FORX"} {
		if IsKeyword(s) {
			t.Errorf("%q: unexpected keyword", s)
		}
	}
}
