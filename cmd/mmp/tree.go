package main

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"
	"github.com/scott-cotton/cli"

	"github.com/signadot/cfgpatch/ir"
)

func drawTree(cfg *TreeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tree.Parse(cc, args)
	if err != nil {
		return err
	}
	dir, mm, err := cfg.openProject(args, cfg.Env)
	if err != nil {
		return err
	}
	db, err := mm.Execute()
	if err != nil {
		return err
	}
	t := dbTree(dir.Root, db, cfg.Keys)
	_, err = fmt.Fprintln(cc.Out, t.String())
	return err
}

// dbTree groups the top-level nodes of db under their origin file.
func dbTree(root string, db *ir.Database, keys bool) *tree.Tree {
	t := tree.NewTree(tree.NodeString(root))
	var (
		file  string
		fileT *tree.Tree
	)
	for _, n := range db.Sorted() {
		if fileT == nil || n.File != file {
			file = n.File
			fileT = t.AddChild(tree.NodeString(file))
		}
		addNode(fileT, n, keys)
	}
	return t
}

func addNode(parent *tree.Tree, n *ir.ConfigNode, keys bool) {
	label := n.Ident
	if name, ok := n.Name(); ok {
		label += "[" + name + "]"
	}
	t := parent.AddChild(tree.NodeString(label))
	if keys {
		for _, k := range n.Keys {
			t.AddChild(tree.NodeString(k.Ident + " = " + k.Value))
		}
	}
	for _, c := range n.Nodes {
		if c != nil {
			addNode(t, c, keys)
		}
	}
}
