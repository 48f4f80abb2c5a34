package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/signadot/cfgpatch"
	"github.com/signadot/cfgpatch/ir"
)

func TestDBTree(t *testing.T) {
	db := &ir.Database{}
	db.Nodes = ir.NodeList{
		{Ident: "PART", File: "b.cfg", Keys: []ir.ConfigKey{{Ident: "name", Value: "B"}}},
		{
			Ident: "PART",
			File:  "a.cfg",
			Keys:  []ir.ConfigKey{{Ident: "name", Value: "A"}, {Ident: "mass", Value: "1"}},
			Nodes: ir.NodeList{{Ident: "MODULE"}},
		},
	}
	out := dbTree("root", db, true).String()
	for _, want := range []string{"root", "a.cfg", "b.cfg", "PART[A]", "PART[B]", "MODULE", "mass = 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
	if strings.Contains(dbTree("root", db, false).String(), "mass = 1") {
		t.Error("keys drawn without -keys")
	}
}

func TestWriteStats(t *testing.T) {
	buf := &bytes.Buffer{}
	err := writeStats(buf, cfgpatch.Stats{Files: 2, Passes: 3, PrunedPasses: 1, Patches: 1234, Nodes: 5, Keys: 6})
	if err != nil {
		t.Fatal(err)
	}
	want := "2 files, 3 passes (1 pruned), 1,234 patches\n5 nodes, 6 keys\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}

func TestColorDiff(t *testing.T) {
	in := "  a\n- b\n+ c\n"
	out := colorDiff(in)
	if !strings.Contains(out, "  a\n") || !strings.Contains(out, "b") || !strings.Contains(out, "c") {
		t.Errorf("got %q", out)
	}
}
