package cfgpatch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/cfgpatch/ir"
	"github.com/signadot/cfgpatch/parse"
)

// rawPatches builds documents from alternating path and source arguments.
func rawPatches(t *testing.T, pathSrc ...string) *RawPatches {
	t.Helper()
	raw := &RawPatches{}
	for i := 0; i+1 < len(pathSrc); i += 2 {
		doc, err := parse.Parse([]byte(pathSrc[i+1]))
		require.NoError(t, err, pathSrc[i])
		raw.Add(pathSrc[i], doc)
	}
	return raw
}

func topPatches(t *testing.T, src string) []*NodePatch {
	t.Helper()
	doc, err := parse.Parse([]byte(src))
	require.NoError(t, err)
	var res []*NodePatch
	for _, n := range parse.Nodes(doc.Items) {
		res = append(res, NewNodePatch(n, true))
	}
	return res
}

func evalSrc(t *testing.T, db *ir.Database, file, src string) error {
	t.Helper()
	pt := NewPatcher(db, file)
	for _, p := range topPatches(t, src) {
		if err := pt.Evaluate(p); err != nil {
			return err
		}
	}
	return nil
}

func keyStrings(n *ir.ConfigNode) []string {
	var res []string
	for _, k := range n.Keys {
		res = append(res, k.Ident+"="+k.Value)
	}
	return res
}

func childIdents(n *ir.ConfigNode) []string {
	var res []string
	for _, c := range n.Nodes {
		res = append(res, c.Ident)
	}
	return res
}

func requireNoHoles(t *testing.T, db *ir.Database) {
	t.Helper()
	require.Zero(t, db.Nodes.Holes())
	for _, n := range db.Nodes {
		require.NoError(t, n.Visit(func(c *ir.ConfigNode, _ int) error {
			require.Zero(t, c.Nodes.Holes(), "holes under %s", c.Ident)
			return nil
		}))
	}
}
