// Package export serializes the read-only views of an audit store for
// machine consumers.
package export

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"codeaudit/internal/audit"
	"codeaudit/internal/discovery"
	"codeaudit/internal/extract"
)

// Format selects a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format: %q (want json or yaml)", s)
	}
}

// Views is the serializable snapshot of one audit pass. Sets are rendered
// as sorted slices so output is deterministic.
type Views struct {
	RunID        string                            `json:"runId" yaml:"runId"`
	Summary      audit.Summary                     `json:"summary" yaml:"summary"`
	Modules      []string                          `json:"modules" yaml:"modules"`
	Functions    map[string]extract.FunctionRecord `json:"functions" yaml:"functions"`
	Classes      map[string]extract.ClassRecord    `json:"classes" yaml:"classes"`
	EntryPoints  []string                          `json:"entryPoints" yaml:"entryPoints"`
	Dependencies map[string][]string               `json:"dependencies" yaml:"dependencies"`
	DataFiles    []discovery.DataFileRecord        `json:"dataFiles" yaml:"dataFiles"`
	Warnings     []audit.Warning                   `json:"warnings" yaml:"warnings"`
}

// Snapshot captures the store's read-only views.
func Snapshot(store *audit.Store) *Views {
	deps := make(map[string][]string)
	for src, targets := range store.Dependencies() {
		deps[src] = sortedSet(targets)
	}

	return &Views{
		RunID:        store.RunID(),
		Summary:      store.Summary(),
		Modules:      store.SortedModules(),
		Functions:    store.Functions(),
		Classes:      store.Classes(),
		EntryPoints:  sortedSet(store.EntryPoints()),
		Dependencies: deps,
		DataFiles:    store.DataFiles(),
		Warnings:     store.Warnings(),
	}
}

// Marshal serializes a snapshot in the requested format.
func Marshal(v *Views, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported export format: %q", format)
	}
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
