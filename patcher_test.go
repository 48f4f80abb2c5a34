package cfgpatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/signadot/cfgpatch/ir"
)

const baseDoc = `
PART
{
	name = A
	mass = 1
	MODULE
	{
		name = Engine
		thrust = 10
	}
	MODULE
	{
		name = Engine
		thrust = 20
	}
}
PART
{
	name = B
	mass = 2
}
`

func baseDB(t *testing.T) *ir.Database {
	t.Helper()
	db := &ir.Database{}
	require.NoError(t, evalSrc(t, db, "base.cfg", baseDoc))
	require.Equal(t, 2, db.Len())
	return db
}

func TestMaterialize(t *testing.T) {
	patches := topPatches(t, `
RESOURCE
{
	name = Ore
	amount =   5
	INNER { a = 1 }
	INNER { }
}
`)
	got, err := Materialize(patches[0])
	require.NoError(t, err)
	want := &ir.ConfigNode{
		Ident: "RESOURCE",
		Keys:  []ir.ConfigKey{{Ident: "name", Value: "Ore"}, {Ident: "amount", Value: "5"}},
		Nodes: ir.NodeList{
			{Ident: "INNER", Keys: []ir.ConfigKey{{Ident: "a", Value: "1"}}},
			{Ident: "INNER"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestInsertStampsFile(t *testing.T) {
	db := baseDB(t)
	for _, n := range db.Nodes {
		require.Equal(t, "base.cfg", n.File)
		require.True(t, n.IsTopLevel())
		for _, c := range n.Nodes {
			require.False(t, c.IsTopLevel())
		}
	}
}

func TestTopLevelErrors(t *testing.T) {
	tests := []struct {
		src   string
		cause RuntimeError
	}{
		{src: "#@PART[A] {}", cause: CannotCopyFromTopLevel},
		{src: "|PART[A] {}", cause: CannotRenameNode},
		{src: "@PART[A] { |MODULE {} }", cause: CannotRenameNode},
		{src: "PART { @MODULE {} }", cause: PatchInNonPatchNode},
		{src: "PART { @key = 1 }", cause: PatchInNonPatchNode},
		{src: "@PART[B] { NEW { -x = 1 } }", cause: PatchInNonPatchNode},
		{src: "@PART[A] { #@PART[Z] {} }", cause: CopyFromNotFound},
		{src: "@PART[A] { #../../PART[A] {} }", cause: CopyFromNotFound},
		{src: "@PART[B] { @name += 1 }", cause: BadAssignment},
		{src: "@PART[B] { @mass /= 0 }", cause: BadAssignment},
		{src: "@PART[B] { @name ^= :(: }", cause: BadAssignment},
	}
	for _, tc := range tests {
		db := baseDB(t)
		err := evalSrc(t, db, "patch.cfg", tc.src)
		require.ErrorIs(t, err, ErrRuntime, tc.src)
		var pe *PatchingError
		require.ErrorAs(t, err, &pe, tc.src)
		require.Equal(t, KindRuntime, pe.Kind, tc.src)
		require.Equal(t, tc.cause, pe.Cause, tc.src)
		require.Equal(t, "patch.cfg", pe.File, tc.src)
		require.Contains(t, err.Error(), "error when evaluating `patch.cfg`", tc.src)
	}
}

func TestNotTopLevel(t *testing.T) {
	db := baseDB(t)
	p := topPatches(t, "@PART {}")[0]
	p.IsTopLevel = false
	err := NewPatcher(db, "x.cfg").Evaluate(p)
	require.ErrorIs(t, err, ErrInternal)
	require.NotErrorIs(t, err, ErrRuntime)
}

func TestEditOrCreate(t *testing.T) {
	db := baseDB(t)
	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[A] { %MODULE[Engine] { %thrust *= 2 } }"))
	a := db.Nodes[0]
	require.Len(t, a.Nodes, 2)
	require.Equal(t, []string{"name=Engine", "thrust=20"}, keyStrings(a.Nodes[0]))
	require.Equal(t, []string{"name=Engine", "thrust=40"}, keyStrings(a.Nodes[1]))

	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[A] { %MODULE[Fuel] { fuel = 5 } }"))
	require.Len(t, a.Nodes, 3)
	require.Equal(t, "MODULE", a.Nodes[2].Ident)
	require.Equal(t, []string{"fuel=5"}, keyStrings(a.Nodes[2]))

	// created nodes are the literal body
	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[B] { %MODULE[Tank] { name = Tank \n INNER { a = 1 } } }"))
	b := db.Nodes[1]
	require.Equal(t, []string{"MODULE"}, childIdents(b))
	require.Equal(t, []string{"name=Tank"}, keyStrings(b.Nodes[0]))
	require.Equal(t, []string{"INNER"}, childIdents(b.Nodes[0]))

	// top level creation belongs to the patching file
	require.NoError(t, evalSrc(t, db, "patch.cfg", "%PART[C] { name = C }"))
	require.Equal(t, 3, db.Len())
	require.Equal(t, "patch.cfg", db.Nodes[2].File)
	require.Equal(t, []string{"name=C"}, keyStrings(db.Nodes[2]))
	requireNoHoles(t, db)
}

func TestDefaultValue(t *testing.T) {
	db := baseDB(t)
	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[A] { &MODULE[Engine] { thrust = 99 } }"))
	a := db.Nodes[0]
	require.Len(t, a.Nodes, 2)
	require.Equal(t, []string{"name=Engine", "thrust=10"}, keyStrings(a.Nodes[0]))
	require.Equal(t, []string{"name=Engine", "thrust=20"}, keyStrings(a.Nodes[1]))

	for range 2 {
		require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[B] { &MODULE[Engine] { name = Engine } }"))
	}
	b := db.Nodes[1]
	require.Equal(t, []string{"MODULE"}, childIdents(b))
	requireNoHoles(t, db)
}

func TestCreateRequiresPureData(t *testing.T) {
	tests := []string{
		"@PART[A] { %MODULE[Fuel] { @fuel = 5 } }",
		"@PART[A] { &MODULE[Fuel] { -fuel = 5 } }",
		"@PART[A] { %MODULE[Fuel] { name = Fuel \n @INNER {} } }",
		"%PART[Z] { @mass *= 2 }",
		"&PART[Z] { name = Z \n %mass = 1 }",
	}
	for _, src := range tests {
		db := baseDB(t)
		err := evalSrc(t, db, "patch.cfg", src)
		var pe *PatchingError
		require.ErrorAs(t, err, &pe, src)
		require.Equal(t, PatchInNonPatchNode, pe.Cause, src)
		require.ErrorIs(t, err, ErrRuntime, src)
		require.Equal(t, 2, db.Len(), src)
	}
}

func TestInsertAssignment(t *testing.T) {
	tests := []string{
		"@PART[A] { cost += 5 }",
		"PART { name = C \n mass *= 2 }",
		"@PART[A] { %MODULE[Fuel] { fuel ^= :a:b: } }",
	}
	for _, src := range tests {
		db := baseDB(t)
		err := evalSrc(t, db, "patch.cfg", src)
		var pe *PatchingError
		require.ErrorAs(t, err, &pe, src)
		require.Equal(t, BadAssignment, pe.Cause, src)
	}
}

func TestCopyNode(t *testing.T) {
	db := baseDB(t)
	require.NoError(t, evalSrc(t, db, "patch.cfg", "+PART[B] { @name = C }"))
	require.Equal(t, 3, db.Len())
	require.Equal(t, []string{"name=B", "mass=2"}, keyStrings(db.Nodes[1]))
	c := db.Nodes[2]
	require.Equal(t, []string{"name=C", "mass=2"}, keyStrings(c))
	require.Equal(t, "base.cfg", c.File)

	// copies are not revisited by the sweep that made them
	require.NoError(t, evalSrc(t, db, "patch.cfg", "+PART {}"))
	require.Equal(t, 6, db.Len())

	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[A] { +MODULE[Engine],0 { @thrust = 1 } }"))
	a := db.Nodes[0]
	require.Len(t, a.Nodes, 3)
	require.Equal(t, []string{"name=Engine", "thrust=10"}, keyStrings(a.Nodes[0]))
	require.Equal(t, []string{"name=Engine", "thrust=1"}, keyStrings(a.Nodes[2]))
	requireNoHoles(t, db)
}

func TestDelete(t *testing.T) {
	db := baseDB(t)
	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[A] { -MODULE[Engine],1 {} }"))
	a := db.Nodes[0]
	require.Len(t, a.Nodes, 1)
	require.Equal(t, []string{"name=Engine", "thrust=10"}, keyStrings(a.Nodes[0]))

	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[A] { !MODULE[*] {} }"))
	require.Empty(t, a.Nodes)

	require.NoError(t, evalSrc(t, db, "patch.cfg", "!PART {}"))
	require.Zero(t, db.Len())
}

func TestNodeIndexAndHas(t *testing.T) {
	db := baseDB(t)
	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[*],1 { @mass = 0 }"))
	require.Equal(t, []string{"name=A", "mass=1"}, keyStrings(db.Nodes[0]))
	require.Equal(t, []string{"name=B", "mass=0"}, keyStrings(db.Nodes[1]))

	require.NoError(t, evalSrc(t, db, "patch.cfg", `
@PART:HAS[@MODULE[Engine]:HAS[#thrust[2*]]] { big = true }
@PART:HAS[!MODULE] { bare = true }
`))
	require.Equal(t, []string{"name=A", "mass=1", "big=true"}, keyStrings(db.Nodes[0]))
	require.Equal(t, []string{"name=B", "mass=0", "bare=true"}, keyStrings(db.Nodes[1]))
}

func TestKeyOps(t *testing.T) {
	db := baseDB(t)
	require.NoError(t, evalSrc(t, db, "patch.cfg", `
@PART[B]
{
	tag = x
	tag = y
	@tag,1 = z
	@mass += 0.5
	&cost = 10
	&mass = 99
	-missing = 0
	@missing = 1
}
`))
	b := db.Nodes[1]
	require.Equal(t, []string{"name=B", "mass=2.5", "tag=x", "tag=z", "cost=10"}, keyStrings(b))

	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[B] { @tag,* ^= :^(.)$:<$1>: }"))
	require.Equal(t, []string{"name=B", "mass=2.5", "tag=<x>", "tag=<z>", "cost=10"}, keyStrings(b))

	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[B] { -tag,* = \n +cost *= 2 \n @mass != 2 }"))
	require.Equal(t, []string{"name=B", "mass=6.25", "cost=10", "cost=20"}, keyStrings(b))

	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[B] { -cost = \n %fresh -= 1 }"))
	require.Equal(t, []string{"name=B", "mass=6.25", "cost=20", "fresh=1"}, keyStrings(b))

	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[B] { |_ = ENGINE }"))
	require.Equal(t, "ENGINE", b.Ident)
}

func TestCopyFrom(t *testing.T) {
	db := baseDB(t)
	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[B] { #@PART[A]/MODULE[Engine] { @thrust = 1 } }"))
	a, b := db.Nodes[0], db.Nodes[1]
	require.Equal(t, []string{"name=Engine", "thrust=10"}, keyStrings(a.Nodes[0]))
	require.Equal(t, []string{"MODULE"}, childIdents(b))
	require.Equal(t, []string{"name=Engine", "thrust=1"}, keyStrings(b.Nodes[0]))
	require.False(t, b.Nodes[0].IsTopLevel())

	// relative to the checked out module, its sibling is found
	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[A] { @MODULE[Engine],1 { #../MODULE[Engine] {} } }"))
	m2 := a.Nodes[1]
	require.Equal(t, []string{"MODULE"}, childIdents(m2))
	require.Equal(t, []string{"name=Engine", "thrust=10"}, keyStrings(m2.Nodes[0]))
	requireNoHoles(t, db)
}

func TestCopyFromUpOutOfChild(t *testing.T) {
	db := baseDB(t)
	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[B] { #../PART[A]/MODULE[Engine]/../MODULE[Engine] {} }"))
	b := db.Nodes[1]
	require.Equal(t, []string{"MODULE"}, childIdents(b))
	require.Equal(t, []string{"name=Engine", "thrust=10"}, keyStrings(b.Nodes[0]))

	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[B] { #../PART[A]/MODULE[Engine]/../../PART[B] {} }"))
	require.Equal(t, []string{"MODULE", "PART"}, childIdents(b))
	require.Equal(t, []string{"name=B", "mass=2"}, keyStrings(b.Nodes[1]))
	requireNoHoles(t, db)
}

func TestCopyFromAncestor(t *testing.T) {
	db := baseDB(t)
	require.NoError(t, evalSrc(t, db, "patch.cfg", "@PART[A] { @MODULE[Engine],1 { #../../PART[A] {} } }"))
	a := db.Nodes[0]
	m2 := a.Nodes[1]
	require.Equal(t, []string{"PART"}, childIdents(m2))
	snap := m2.Nodes[0]
	require.Equal(t, []string{"name=A", "mass=1"}, keyStrings(snap))
	require.Equal(t, "", snap.File)
	require.Equal(t, []string{"MODULE", "MODULE"}, childIdents(snap))
	require.Empty(t, snap.Nodes[1].Nodes)
	requireNoHoles(t, db)
}
