package cfgpatch

import (
	"io"
	"log/slog"

	"github.com/signadot/cfgpatch/debug"
	"github.com/signadot/cfgpatch/ir"
	"github.com/signadot/cfgpatch/pass"
)

type mmConfig struct {
	log *slog.Logger
}

type ModuleManagerOpt func(*mmConfig)

// WithLogger sets the logger receiving progress messages. By default they
// are discarded.
func WithLogger(l *slog.Logger) ModuleManagerOpt {
	return func(c *mmConfig) { c.log = l }
}

// Stats summarizes one execution.
type Stats struct {
	Files        int
	Passes       int
	PrunedPasses int
	Patches      int
	Nodes        int
	Keys         int
}

// ModuleManager schedules and runs every patch of a set of documents.
type ModuleManager struct {
	raw   *RawPatches
	known []string
	log   *slog.Logger

	scheduled bool
	declared  Declared
	patches   PatchSet
	pruned    []pass.Pass
	stats     Stats
}

// NewModuleManager creates a manager for raw. known names passes which
// exist regardless of the documents, such as those of loaded extensions.
func NewModuleManager(raw *RawPatches, known []string, opts ...ModuleManagerOpt) *ModuleManager {
	cfg := &mmConfig{}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.log == nil {
		cfg.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ModuleManager{raw: raw, known: known, log: cfg.log}
}

// Schedule groups, orders and prunes the patches. It is idempotent.
func (m *ModuleManager) Schedule() (PatchSet, error) {
	if m.scheduled {
		return m.patches, nil
	}
	patches, err := m.raw.Extract()
	if err != nil {
		return nil, err
	}
	m.log.Info("scanning declared passes")
	m.declared = NewDeclared(m.known...)
	for _, id := range patches.DeclaredPasses() {
		m.declared.Add(id)
	}
	if debug.Passes() {
		debug.Logf("existing passes: %v\n", m.declared.Sorted())
	}
	patches, m.pruned = patches.PruneBeforeAfter(m.declared)
	for _, p := range m.pruned {
		m.log.Info("pruning pass", "pass", p.String(), "reason", ":FOR["+string(p.Ident)+"] does not exist")
	}
	m.log.Info("evaluating needs")
	patches, err = patches.PruneNeeds(m.declared)
	if err != nil {
		return nil, err
	}
	m.patches = patches
	m.scheduled = true
	return patches, nil
}

// Declared returns the existing passes once scheduled.
func (m *ModuleManager) Declared() Declared {
	return m.declared
}

// Pruned returns the passes removed by scheduling.
func (m *ModuleManager) Pruned() []pass.Pass {
	return m.pruned
}

// Execute runs every scheduled patch, in pass, file and document order.
func (m *ModuleManager) Execute() (*ir.Database, error) {
	patches, err := m.Schedule()
	if err != nil {
		return nil, err
	}
	db := &ir.Database{}
	files := map[string]bool{}
	m.stats = Stats{PrunedPasses: len(m.pruned)}
	for _, pp := range patches {
		m.log.Info("running pass", "pass", pp.Pass.String(), "patches", pp.Len())
		m.stats.Passes++
		for _, f := range pp.Files {
			files[f.Path] = true
			pt := NewPatcher(db, f.Path)
			for _, patch := range f.Contents {
				if err := pt.Evaluate(patch); err != nil {
					return nil, err
				}
				m.stats.Patches++
			}
		}
	}
	m.stats.Files = len(files)
	m.stats.Nodes = db.Len()
	for _, n := range db.Nodes {
		n.Visit(func(c *ir.ConfigNode, _ int) error {
			m.stats.Keys += len(c.Keys)
			return nil
		})
	}
	return db, nil
}

func (m *ModuleManager) Stats() Stats {
	return m.stats
}
