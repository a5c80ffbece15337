package audit

import (
	"sort"

	"codeaudit/internal/discovery"
	"codeaudit/internal/extract"
)

// Warning records a recovered per-file failure. Warnings never abort the
// pass; the file stays counted among discovered files.
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Summary holds the pass-level counters exposed to report consumers.
type Summary struct {
	Files             int     `json:"files"`
	Modules           int     `json:"modules"`
	Functions         int     `json:"functions"`
	Classes           int     `json:"classes"`
	StrategyClasses   int     `json:"strategyClasses"`
	AverageComplexity float64 `json:"averageComplexity"`
	DependencyEdges   int     `json:"dependencyEdges"`
}

// Store is the aggregate result of one audit pass. It is populated by a
// single writer during the pass and read-only afterwards; accessors return
// copies so downstream consumers cannot mutate the pass results.
type Store struct {
	runID        string
	fileCount    int
	modules      map[string]bool
	functions    map[string]extract.FunctionRecord
	classes      map[string]extract.ClassRecord
	entryPoints  map[string]bool
	dependencies map[string]map[string]bool
	dataFiles    []discovery.DataFileRecord
	warnings     []Warning
}

func newStore(runID string) *Store {
	return &Store{
		runID:        runID,
		modules:      make(map[string]bool),
		functions:    make(map[string]extract.FunctionRecord),
		classes:      make(map[string]extract.ClassRecord),
		entryPoints:  make(map[string]bool),
		dependencies: make(map[string]map[string]bool),
	}
}

// RunID identifies the pass that produced this store.
func (s *Store) RunID() string {
	return s.runID
}

// FileCount is the number of source files discovered, parse failures
// included.
func (s *Store) FileCount() int {
	return s.fileCount
}

// Modules returns the set of discovered module identifiers.
func (s *Store) Modules() map[string]bool {
	return copyBoolSet(s.modules)
}

// Functions returns function records keyed by module.functionName.
func (s *Store) Functions() map[string]extract.FunctionRecord {
	out := make(map[string]extract.FunctionRecord, len(s.functions))
	for k, v := range s.functions {
		out[k] = v
	}
	return out
}

// Classes returns class records keyed by module.ClassName.
func (s *Store) Classes() map[string]extract.ClassRecord {
	out := make(map[string]extract.ClassRecord, len(s.classes))
	for k, v := range s.classes {
		out[k] = v
	}
	return out
}

// EntryPoints returns the modules whose raw text contains the top-level
// execution guard.
func (s *Store) EntryPoints() map[string]bool {
	return copyBoolSet(s.entryPoints)
}

// Dependencies returns the adjacency map: source module to the set of
// project modules it imports.
func (s *Store) Dependencies() map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(s.dependencies))
	for src, targets := range s.dependencies {
		out[src] = copyBoolSet(targets)
	}
	return out
}

// DataFiles returns the recognized non-source data files.
func (s *Store) DataFiles() []discovery.DataFileRecord {
	out := make([]discovery.DataFileRecord, len(s.dataFiles))
	copy(out, s.dataFiles)
	return out
}

// Warnings returns the recovered per-file failures, in discovery order.
func (s *Store) Warnings() []Warning {
	out := make([]Warning, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// Summary computes the pass-level counters.
func (s *Store) Summary() Summary {
	sum := Summary{
		Files:     s.fileCount,
		Modules:   len(s.modules),
		Functions: len(s.functions),
		Classes:   len(s.classes),
	}

	total := 0
	for _, fn := range s.functions {
		total += fn.Complexity
	}
	if sum.Functions > 0 {
		sum.AverageComplexity = float64(total) / float64(sum.Functions)
	}

	for _, cls := range s.classes {
		if cls.IsStrategy {
			sum.StrategyClasses++
		}
	}

	for _, targets := range s.dependencies {
		sum.DependencyEdges += len(targets)
	}

	return sum
}

// SortedModules returns the module identifiers in lexical order, for
// deterministic report rendering.
func (s *Store) SortedModules() []string {
	return sortedKeys(s.modules)
}

func copyBoolSet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedKeys(in map[string]bool) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
