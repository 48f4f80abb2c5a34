package cfgpatch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/cfgpatch/pass"
)

func passesOf(s PatchSet) []pass.Pass {
	var res []pass.Pass
	for _, pp := range s {
		res = append(res, pp.Pass)
	}
	return res
}

func TestExtract(t *testing.T) {
	raw := rawPatches(t,
		"b.cfg", "@A:FINAL {}\n@B:AFTER[qux] {}\nC {}\n",
		"a.cfg", "@D:AFTER[foo] {}\n@E:BEFORE[qux] {}\nF {}\n@G:LAST[b] {}\n@H:LAST[a] {}\n",
	)
	set, err := raw.Extract()
	require.NoError(t, err)
	require.Equal(t, []pass.Pass{
		pass.Default(),
		pass.After("foo"),
		pass.Before("qux"),
		pass.After("qux"),
		pass.Last("a"),
		pass.Last("b"),
		pass.Final(),
	}, passesOf(set))

	def := set[0]
	require.Len(t, def.Files, 2)
	require.Equal(t, "a.cfg", def.Files[0].Path)
	require.Equal(t, "F", def.Files[0].Contents[0].Ident)
	require.Equal(t, "b.cfg", def.Files[1].Path)
	require.Equal(t, "C", def.Files[1].Contents[0].Ident)
	require.True(t, def.Files[1].Contents[0].IsTopLevel)
	require.Equal(t, 2, def.Len())
}

func TestExtractDefaultAlwaysPresent(t *testing.T) {
	set, err := rawPatches(t, "a.cfg", "@A:FIRST {}").Extract()
	require.NoError(t, err)
	require.Equal(t, []pass.Pass{pass.Default(), pass.First()}, passesOf(set))
	require.Zero(t, set[0].Len())
}

func TestExtractTopLevelKey(t *testing.T) {
	_, err := rawPatches(t, "a.cfg", "key = value\n").Extract()
	require.ErrorIs(t, err, ErrInternal)
}

func TestPruneBeforeAfter(t *testing.T) {
	raw := rawPatches(t,
		"a.cfg", `
@A:FOR[x] {}
@A:BEFORE[x] {}
@A:AFTER[x] {}
@A:BEFORE[y] {}
@A:AFTER[z] {}
@A:FOR[y2] {}
@A:LAST[nobody] {}
@A:BEFORE[ext] {}
`)
	set, err := raw.Extract()
	require.NoError(t, err)
	declared := NewDeclared("ext")
	for _, id := range set.DeclaredPasses() {
		declared.Add(id)
	}
	require.Equal(t, []string{"ext", "x", "y2"}, declared.Sorted())

	kept, pruned := set.PruneBeforeAfter(declared)
	require.Equal(t, []pass.Pass{
		pass.Default(),
		pass.Before("ext"),
		pass.Before("x"),
		pass.For("x"),
		pass.After("x"),
		pass.For("y2"),
		pass.Last("nobody"),
	}, passesOf(kept))
	require.ElementsMatch(t, []pass.Pass{pass.Before("y"), pass.After("z")}, pruned)
}
