package cfgpatch

import (
	"cmp"
	"slices"

	"github.com/signadot/cfgpatch/parse"
	"github.com/signadot/cfgpatch/pass"
)

// File associates contents with the path of the document they come from.
type File[T any] struct {
	Path     string
	Contents T
}

// RawPatches are the parsed documents to be patched together.
type RawPatches struct {
	Files []File[*parse.Document]
}

func (r *RawPatches) Add(path string, doc *parse.Document) {
	r.Files = append(r.Files, File[*parse.Document]{Path: path, Contents: doc})
}

// PassPatches are the top-level patches of one pass, by file.
type PassPatches struct {
	Pass  pass.Pass
	Files []File[[]*NodePatch]
}

// Len returns the number of top-level patches.
func (p *PassPatches) Len() int {
	n := 0
	for _, f := range p.Files {
		n += len(f.Contents)
	}
	return n
}

// PatchSet is a list of pass groups in execution order.
type PatchSet []PassPatches

// Extract groups the top-level nodes of every document by pass. Passes are
// sorted by [pass.Compare] and files within a pass by path. The default pass
// is always present.
func (r *RawPatches) Extract() (PatchSet, error) {
	groups := map[pass.Pass]map[string][]*NodePatch{
		pass.Default(): {},
	}
	for _, f := range r.Files {
		if f.Contents == nil {
			continue
		}
		for _, item := range f.Contents.Items {
			switch x := item.(type) {
			case *parse.Node:
				byFile := groups[x.Pass]
				if byFile == nil {
					byFile = map[string][]*NodePatch{}
					groups[x.Pass] = byFile
				}
				byFile[f.Path] = append(byFile[f.Path], NewNodePatch(x, true))
			case *parse.KeyVal:
				return nil, internalErr("top-level keys are illegal: %s in %s at %s", x.Key, f.Path, x.Pos)
			}
		}
	}
	res := make(PatchSet, 0, len(groups))
	for p, byFile := range groups {
		pp := PassPatches{Pass: p}
		for path, patches := range byFile {
			pp.Files = append(pp.Files, File[[]*NodePatch]{Path: path, Contents: patches})
		}
		slices.SortFunc(pp.Files, func(a, b File[[]*NodePatch]) int {
			return cmp.Compare(a.Path, b.Path)
		})
		res = append(res, pp)
	}
	slices.SortFunc(res, func(a, b PassPatches) int {
		return pass.Compare(a.Pass, b.Pass)
	})
	return res, nil
}

// DeclaredPasses returns the identifiers of every :FOR pass.
func (s PatchSet) DeclaredPasses() []string {
	var res []string
	for _, pp := range s {
		if pp.Pass.Kind == pass.KindFor {
			res = append(res, string(pp.Pass.Ident))
		}
	}
	return res
}

// PruneBeforeAfter removes the :BEFORE and :AFTER groups anchored to a pass
// which does not exist. It returns the kept set and the pruned passes.
func (s PatchSet) PruneBeforeAfter(declared Declared) (PatchSet, []pass.Pass) {
	var (
		res    PatchSet
		pruned []pass.Pass
	)
	for _, pp := range s {
		switch pp.Pass.Kind {
		case pass.KindBefore, pass.KindAfter:
			if !declared.Has(string(pp.Pass.Ident)) {
				pruned = append(pruned, pp.Pass)
				continue
			}
		}
		res = append(res, pp)
	}
	return res, pruned
}

// PruneNeeds returns a copy of s without the nodes and keys whose :NEEDS
// fail against declared.
func (s PatchSet) PruneNeeds(declared Declared) (PatchSet, error) {
	res := make(PatchSet, 0, len(s))
	for _, pp := range s {
		out := PassPatches{Pass: pp.Pass}
		for _, f := range pp.Files {
			var kept []*NodePatch
			for _, p := range f.Contents {
				q, err := pruneNeeds(p, declared)
				if err != nil {
					return nil, err
				}
				if q != nil {
					kept = append(kept, q)
				}
			}
			out.Files = append(out.Files, File[[]*NodePatch]{Path: f.Path, Contents: kept})
		}
		res = append(res, out)
	}
	return res, nil
}
