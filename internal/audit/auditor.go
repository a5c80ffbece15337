// Package audit orchestrates the analysis pass: discovery, per-file
// parsing and extraction, and dependency resolution into a single store.
package audit

import (
	"context"
	"os"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"codeaudit/internal/discovery"
	"codeaudit/internal/extract"
	"codeaudit/internal/logging"
	"codeaudit/internal/pyast"
	"codeaudit/internal/resolve"
)

// Auditor runs the full analysis pass over a project directory.
type Auditor struct {
	discoverer *Discoverer
	workers    int
	logger     *logging.Logger
}

// Discoverer is the file-enumeration dependency of the Auditor.
type Discoverer = discovery.Discoverer

// Option configures an Auditor.
type Option func(*Auditor)

// WithWorkers sets how many files are analyzed concurrently. Values below 1
// fall back to the number of CPUs.
func WithWorkers(n int) Option {
	return func(a *Auditor) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithExcludedDirs overrides the directory names pruned during discovery.
func WithExcludedDirs(dirs []string) Option {
	return func(a *Auditor) {
		if len(dirs) > 0 {
			a.discoverer = discovery.NewDiscoverer(dirs...)
		}
	}
}

// New creates an Auditor. The logger must not be nil.
func New(logger *logging.Logger, opts ...Option) *Auditor {
	a := &Auditor{
		discoverer: discovery.NewDiscoverer(),
		workers:    runtime.NumCPU(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// fileResult carries one file's facts back to the reducer. Exactly one
// worker writes each slot, so no locking is needed around the slice.
type fileResult struct {
	facts      *extract.FileFacts
	entryPoint bool
	warning    *Warning
}

// Run executes the pass. Discovery failures are fatal; every per-file
// failure is recovered into a warning. The returned store is complete and
// read-only even when warnings are present.
func (a *Auditor) Run(ctx context.Context, root string) (*Store, error) {
	runID := uuid.New().String()

	result, err := a.discoverer.Discover(root)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Discovered project files", map[string]interface{}{
		"run":     runID,
		"sources": len(result.SourceFiles),
		"data":    len(result.DataFiles),
	})

	// The module set must be complete before any dependency resolution.
	modules := result.Modules()

	results := make([]fileResult, len(result.SourceFiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, sf := range result.SourceFiles {
		g.Go(func() error {
			results[i] = a.analyzeFile(gctx, sf)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	store := newStore(runID)
	store.fileCount = len(result.SourceFiles)
	store.modules = modules
	store.dataFiles = result.DataFiles

	resolver := resolve.NewResolver(modules)
	for _, res := range results {
		if res.warning != nil {
			a.logger.Warn("Skipping file facts", map[string]interface{}{
				"run":   runID,
				"path":  res.warning.Path,
				"error": res.warning.Message,
			})
			store.warnings = append(store.warnings, *res.warning)
		}
		if res.entryPoint && res.facts != nil {
			store.entryPoints[res.facts.Module] = true
		}
		if res.facts == nil {
			continue
		}
		for _, fn := range res.facts.Functions {
			store.functions[fn.Key()] = fn
		}
		for _, cls := range res.facts.Classes {
			store.classes[cls.Key()] = cls
		}
		for _, imp := range res.facts.Imports {
			resolver.Add(res.facts.Module, imp)
		}
	}
	store.dependencies = resolver.Dependencies()

	a.logger.Info("Audit pass complete", map[string]interface{}{
		"run":       runID,
		"functions": len(store.functions),
		"classes":   len(store.classes),
		"warnings":  len(store.warnings),
	})

	return store, nil
}

// analyzeFile reads, parses, and extracts one source file. Failures become
// warnings; entry-point detection happens on the raw text before parsing so
// an unparseable entry point is still recognized.
func (a *Auditor) analyzeFile(ctx context.Context, sf discovery.SourceFile) fileResult {
	source, err := os.ReadFile(sf.Path)
	if err != nil {
		return fileResult{warning: &Warning{Path: sf.Path, Message: err.Error()}}
	}

	res := fileResult{
		facts:      &extract.FileFacts{Module: sf.Module},
		entryPoint: extract.HasEntryPoint(source),
	}

	parser := pyast.NewParser()
	root, err := parser.Parse(ctx, sf.Path, source)
	if err != nil {
		res.warning = &Warning{Path: sf.Path, Message: err.Error()}
		return res
	}

	res.facts = extract.File(root, source, sf.Module)
	return res
}
