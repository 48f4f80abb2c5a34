// Package gamedata discovers and parses the patch documents of a game data
// directory.
package gamedata

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"

	"github.com/signadot/cfgpatch"
	"github.com/signadot/cfgpatch/debug"
	"github.com/signadot/cfgpatch/parse"
)

const (
	ProjectFile   = "cfgpatch.yaml"
	DefaultSuffix = ".cfg"
)

var DefaultExclude = []string{"**/PluginData/**"}

// Extension is a pass which exists independently of the documents, such as
// one declared by a loaded plugin. If is an expression over the env; the
// extension is only known when it evaluates to true.
type Extension struct {
	Name string `yaml:"name"`
	If   string `yaml:"if,omitempty"`
}

type Dir struct {
	// Root is the directory searched for documents, relative to the
	// project file.
	Root       string         `yaml:"root,omitempty"`
	Suffix     string         `yaml:"suffix,omitempty"`
	Exclude    []string       `yaml:"exclude,omitempty"`
	Extensions []Extension    `yaml:"extensions,omitempty"`
	Env        map[string]any `yaml:"env,omitempty"`

	known []string
}

// OpenDir reads the project file of path, if any, and applies env on top of
// its env.
func OpenDir(path string, env map[string]any) (*Dir, error) {
	dir := &Dir{}
	pPath := filepath.Join(path, ProjectFile)
	d, err := os.ReadFile(pPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(d, dir); err != nil {
			return nil, fmt.Errorf("could not decode %s: %w", pPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("could not read %q: %w", pPath, err)
	}
	return initDir(dir, path, env)
}

func initDir(dir *Dir, path string, env map[string]any) (*Dir, error) {
	switch {
	case dir.Root == "":
		dir.Root = path
	case !filepath.IsAbs(dir.Root):
		dir.Root = filepath.Join(path, dir.Root)
	}
	if dir.Suffix == "" {
		dir.Suffix = DefaultSuffix
	}
	if dir.Exclude == nil {
		dir.Exclude = DefaultExclude
	}
	for _, pat := range dir.Exclude {
		if _, err := doublestar.Match(pat, "a"); err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pat, err)
		}
	}
	if dir.Env == nil {
		dir.Env = map[string]any{}
	}
	maps.Copy(dir.Env, env)
	if debug.Load() {
		debug.Logf("loaded env %v\n", dir.Env)
	}
	if err := dir.filterExtensions(); err != nil {
		return nil, err
	}
	return dir, nil
}

func (dir *Dir) filterExtensions() error {
	dir.known = dir.known[:0]
	for i := range dir.Extensions {
		ext := &dir.Extensions[i]
		if ext.Name == "" {
			return fmt.Errorf("extension %d has no name", i)
		}
		if ext.If != "" {
			ok, err := evalIf(ext.If, dir.Env)
			if err != nil {
				return fmt.Errorf("error evaluating if of extension %s: %w", ext.Name, err)
			}
			if !ok {
				continue
			}
		}
		dir.known = append(dir.known, ext.Name)
	}
	return nil
}

func evalIf(input string, env map[string]any) (bool, error) {
	program, err := expr.Compile(input, expr.Env(env), expr.AsBool(),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)))
	if err != nil {
		return false, err
	}
	res, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

// KnownPasses returns the names of the enabled extensions.
func (dir *Dir) KnownPasses() []string {
	return slices.Clone(dir.known)
}

// Files returns the documents under Root as sorted, slash separated paths
// relative to Root.
func (dir *Dir) Files() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir.Root), "**/*"+dir.Suffix)
	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", dir.Root, err)
	}
	res := matches[:0]
	for _, m := range matches {
		if dir.excluded(m) {
			if debug.Load() {
				debug.Logf("excluding %s\n", m)
			}
			continue
		}
		res = append(res, m)
	}
	slices.Sort(res)
	return res, nil
}

func (dir *Dir) excluded(path string) bool {
	for _, pat := range dir.Exclude {
		if match, _ := doublestar.Match(pat, path); match {
			return true
		}
	}
	return false
}

// Load parses every document.
func (dir *Dir) Load() (*cfgpatch.RawPatches, error) {
	files, err := dir.Files()
	if err != nil {
		return nil, err
	}
	raw := &cfgpatch.RawPatches{}
	for _, f := range files {
		d, err := os.ReadFile(filepath.Join(dir.Root, filepath.FromSlash(f)))
		if err != nil {
			return nil, err
		}
		doc, err := parse.Parse(d)
		if err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", f, err)
		}
		if debug.Load() {
			debug.Logf("loaded %s with %d items\n", f, len(doc.Items))
		}
		raw.Add(f, doc)
	}
	return raw, nil
}
