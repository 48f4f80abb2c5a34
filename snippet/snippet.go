// Package snippet runs self-checking patch documents.
//
// A snippet is a document with three top-level nodes: DLLS lists the
// extensions present as "dll = Name" keys, PATCH holds the patches to run
// and EXPECT holds the expected resulting top-level nodes.
package snippet

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/signadot/cfgpatch"
	"github.com/signadot/cfgpatch/encode"
	"github.com/signadot/cfgpatch/ir"
	"github.com/signadot/cfgpatch/libdiff"
	"github.com/signadot/cfgpatch/parse"
)

const (
	DllsNode   = "DLLS"
	DllKey     = "dll"
	PatchNode  = "PATCH"
	ExpectNode = "EXPECT"
)

var ErrSnippet = errors.New("snippet error")

type Snippet struct {
	Path   string
	Dlls   []string
	Patch  *parse.Document
	Expect *ir.Database
}

// Result is the outcome of running a snippet. Diff is empty when the
// output matched.
type Result struct {
	Snippet *Snippet
	Got     string
	Want    string
	Diff    string
	Stats   cfgpatch.Stats
}

func (r *Result) OK() bool {
	return r.Diff == ""
}

// Load reads and parses the snippet at path.
func Load(path string) (*Snippet, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, d)
}

// Parse parses a snippet document. path is recorded as the origin of
// every patch and expected node.
func Parse(path string, d []byte) (*Snippet, error) {
	doc, err := parse.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s := &Snippet{Path: path}
	var patch, expect *parse.Node
	for _, n := range parse.Nodes(doc.Items) {
		switch n.Identifier {
		case DllsNode:
			for _, item := range n.Block {
				if kv, ok := item.(*parse.KeyVal); ok && kv.Key == DllKey {
					s.Dlls = append(s.Dlls, kv.Value)
				}
			}
		case PatchNode:
			patch = n
		case ExpectNode:
			expect = n
		}
	}
	if patch == nil {
		return nil, fmt.Errorf("%w: %s does not specify a %s", ErrSnippet, path, PatchNode)
	}
	if expect == nil {
		return nil, fmt.Errorf("%w: %s does not specify an %s", ErrSnippet, path, ExpectNode)
	}
	s.Patch = &parse.Document{Items: patch.Block}
	s.Expect = &ir.Database{}
	for _, n := range parse.Nodes(expect.Block) {
		node, err := cfgpatch.Materialize(cfgpatch.NewNodePatch(n, true))
		if err != nil {
			return nil, fmt.Errorf("%s: expected node: %w", path, err)
		}
		node.File = path
		if err := s.Expect.Insert(node); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Run patches the snippet and compares the result with its expectation.
// Errors from patching are returned as is; a mismatch is reported in the
// result.
func (s *Snippet) Run(opts ...cfgpatch.ModuleManagerOpt) (*Result, error) {
	raw := &cfgpatch.RawPatches{}
	raw.Add(s.Path, s.Patch)
	mm := cfgpatch.NewModuleManager(raw, s.Dlls, opts...)
	db, err := mm.Execute()
	if err != nil {
		return nil, err
	}
	res := &Result{Snippet: s, Stats: mm.Stats()}
	res.Got, err = render(db)
	if err != nil {
		return nil, err
	}
	res.Want, err = render(s.Expect)
	if err != nil {
		return nil, err
	}
	if res.Got != res.Want {
		res.Diff = libdiff.Text(res.Want, res.Got, 2)
	}
	return res, nil
}

func render(db *ir.Database) (string, error) {
	buf := &bytes.Buffer{}
	if err := encode.Encode(db, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Find returns the snippet files under dir in sorted order.
func Find(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.cfg")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	res := make([]string, len(matches))
	for i, m := range matches {
		res[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return res, nil
}
