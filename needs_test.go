package cfgpatch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/cfgpatch/parse"
)

func TestNeedsSatisfied(t *testing.T) {
	declared := NewDeclared("A", "B")
	tests := []struct {
		needs Needs
		want  bool
	}{
		{needs: nil, want: true},
		{needs: Needs{{Mods: []parse.ModClause{{Name: "A"}}}}, want: true},
		{needs: Needs{{Mods: []parse.ModClause{{Name: "X"}}}}, want: false},
		{needs: Needs{{Mods: []parse.ModClause{{Name: "X", Negated: true}}}}, want: true},
		{needs: Needs{{Mods: []parse.ModClause{{Name: "A", Negated: true}}}}, want: false},
		{needs: Needs{{Mods: []parse.ModClause{{Name: "X"}, {Name: "B"}}}}, want: true},
		{
			needs: Needs{
				{Mods: []parse.ModClause{{Name: "A"}}},
				{Mods: []parse.ModClause{{Name: "X"}}},
			},
			want: false,
		},
	}
	for _, tc := range tests {
		got, err := tc.needs.Satisfied(declared)
		require.NoError(t, err, tc.needs.String())
		require.Equal(t, tc.want, got, tc.needs.String())
	}
}

func TestNeedsSubScoped(t *testing.T) {
	n := Needs{{Mods: []parse.ModClause{{Name: "Mod/Sub"}}}}
	_, err := n.Satisfied(NewDeclared("Mod"))
	require.ErrorIs(t, err, ErrInternal)

	for _, n := range []Needs{
		{{Mods: []parse.ModClause{{Name: "Mod"}, {Name: "Mod/Sub"}}}},
		{
			{Mods: []parse.ModClause{{Name: "X"}}},
			{Mods: []parse.ModClause{{Name: "Mod/Sub", Negated: true}}},
		},
	} {
		_, err := n.Satisfied(NewDeclared("Mod"))
		require.ErrorIs(t, err, ErrInternal, n.String())
	}
}

func TestPruneNeeds(t *testing.T) {
	patches := topPatches(t, `
@PART[a]:NEEDS[X]
{
	@MODULE { k = v }
}
@PART[b]
{
	@MODULE:NEEDS[X] { }
	@MODULE:NEEDS[!X] { }
	keep = 1
	drop:NEEDS[X] = 2
	@RESOURCE:NEEDS[A]
	{
		inner:NEEDS[!A] = 3
	}
}
`)
	require.Len(t, patches, 2)
	declared := NewDeclared("A")

	got, err := pruneNeeds(patches[0], declared)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = pruneNeeds(patches[1], declared)
	require.NoError(t, err)
	require.Len(t, got.Nodes, 2)
	require.Len(t, got.Nodes[0].Needs, 1)
	require.True(t, got.Nodes[0].Needs[0].Mods[0].Negated)
	require.Equal(t, "RESOURCE", got.Nodes[1].Ident)
	require.Empty(t, got.Nodes[1].Keys)
	require.Len(t, got.Keys, 1)
	require.Equal(t, "keep", got.Keys[0].Ident)

	// the input is not modified
	require.Len(t, patches[1].Nodes, 3)
	require.Len(t, patches[1].Keys, 2)
}
