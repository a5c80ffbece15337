// Package resolve converts raw import statements into module identifiers
// and records intra-project dependency edges.
package resolve

import "strings"

// Import is one candidate import target extracted from a source file.
// Level is the number of leading dots on a relative import; zero means the
// target is absolute.
type Import struct {
	Target string
	Level  int
}

// Resolve turns a raw import target into a candidate module identifier.
//
// For an absolute import the target is returned verbatim. For a relative
// import the last Level segments of the source module are dropped and the
// target is joined onto what remains. A level that exceeds the source's
// segment count leaves an empty base; that is not an error, the target
// alone (or the empty string) is returned.
func Resolve(sourceModule, target string, level int) string {
	if level <= 0 {
		return target
	}

	segments := strings.Split(sourceModule, ".")
	if level >= len(segments) {
		segments = nil
	} else {
		segments = segments[:len(segments)-level]
	}

	if target != "" {
		segments = append(segments, target)
	}
	return strings.Join(segments, ".")
}

// Resolver records dependency edges against a fixed set of known project
// modules. The module set must be complete before the first Add call.
type Resolver struct {
	modules map[string]bool
	deps    map[string]map[string]bool
}

// NewResolver creates a Resolver for the given project-module set.
func NewResolver(modules map[string]bool) *Resolver {
	return &Resolver{
		modules: modules,
		deps:    make(map[string]map[string]bool),
	}
}

// Add resolves one import and records an edge sourceModule -> resolved iff
// the resolved identifier exactly equals a known project module. Prefix
// matches never count. Edges are deduplicated per source module.
func (r *Resolver) Add(sourceModule string, imp Import) {
	resolved := Resolve(sourceModule, imp.Target, imp.Level)
	if resolved == "" || !r.modules[resolved] {
		return
	}

	targets, ok := r.deps[sourceModule]
	if !ok {
		targets = make(map[string]bool)
		r.deps[sourceModule] = targets
	}
	targets[resolved] = true
}

// Dependencies returns the adjacency map of recorded edges. The returned
// map is the resolver's own state; callers must not mutate it after the
// pass completes.
func (r *Resolver) Dependencies() map[string]map[string]bool {
	return r.deps
}
