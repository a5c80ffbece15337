// Package discovery walks a project directory and classifies its files.
package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"codeaudit/internal/pyast"
)

// DefaultExcludedDirs are directory names never descended into: bytecode
// caches, build output, test caches, and virtual environments.
var DefaultExcludedDirs = []string{"__pycache__", "_build", ".pytest_cache", ".venv"}

// DataFileKind classifies a recognized non-source data file.
type DataFileKind string

const (
	KindTabular        DataFileKind = "tabular"
	KindSpreadsheet    DataFileKind = "spreadsheet"
	KindStructuredData DataFileKind = "structured-data"
	KindConfig         DataFileKind = "config"
)

// dataFileRule maps a file extension to its kind. The slice is evaluated in
// order; the first matching rule wins.
type dataFileRule struct {
	ext  string
	kind DataFileKind
}

var dataFileRules = []dataFileRule{
	{".csv", KindTabular},
	{".xlsx", KindSpreadsheet},
	{".json", KindStructuredData},
	{".yaml", KindConfig},
}

// ClassifyDataFile returns the kind for a recognized data-file name, or
// false if the extension is not recognized.
func ClassifyDataFile(name string) (DataFileKind, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, rule := range dataFileRules {
		if ext == rule.ext {
			return rule.kind, true
		}
	}
	return "", false
}

// SourceFile is a discovered Python file and its module identifier.
type SourceFile struct {
	Path   string `json:"path"`   // absolute path
	Module string `json:"module"` // dotted identifier relative to the root
}

// DataFileRecord is a discovered non-source data file.
type DataFileRecord struct {
	Path string       `json:"path"` // path relative to the root
	Kind DataFileKind `json:"kind"`
}

// Result holds everything a directory walk produced.
type Result struct {
	Root        string
	SourceFiles []SourceFile
	DataFiles   []DataFileRecord
}

// Modules returns the set of discovered module identifiers.
func (r *Result) Modules() map[string]bool {
	modules := make(map[string]bool, len(r.SourceFiles))
	for _, sf := range r.SourceFiles {
		modules[sf.Module] = true
	}
	return modules
}

// Error reports that the root directory could not be enumerated. It is
// fatal: no analysis happens when discovery fails.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("discover %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Discoverer enumerates source and data files under a root directory.
type Discoverer struct {
	excluded map[string]bool
}

// NewDiscoverer creates a Discoverer that prunes the given directory names.
// With no names given, DefaultExcludedDirs is used.
func NewDiscoverer(excludedDirs ...string) *Discoverer {
	if len(excludedDirs) == 0 {
		excludedDirs = DefaultExcludedDirs
	}
	excluded := make(map[string]bool, len(excludedDirs))
	for _, d := range excludedDirs {
		excluded[d] = true
	}
	return &Discoverer{excluded: excluded}
}

// Discover walks root recursively and classifies every file found. Files
// with the Python extension become SourceFiles carrying their module
// identifier; files matching a data-file rule become DataFileRecords; all
// other files are ignored. An inaccessible root yields a *Error.
func (d *Discoverer) Discover(root string) (*Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &Error{Path: root, Err: err}
	}

	result := &Result{Root: absRoot}

	walkErr := filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			// Unreadable subtrees are skipped, not fatal.
			return fs.SkipDir
		}

		if entry.IsDir() {
			if path != absRoot && d.excluded[entry.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}

		if strings.HasSuffix(entry.Name(), pyast.SourceExtension) {
			result.SourceFiles = append(result.SourceFiles, SourceFile{
				Path:   path,
				Module: ModuleIdentifier(rel),
			})
			return nil
		}

		if kind, ok := ClassifyDataFile(entry.Name()); ok {
			result.DataFiles = append(result.DataFiles, DataFileRecord{
				Path: filepath.ToSlash(rel),
				Kind: kind,
			})
		}
		return nil
	})
	if walkErr != nil {
		return nil, &Error{Path: absRoot, Err: walkErr}
	}

	return result, nil
}

// ModuleIdentifier derives the canonical dotted identifier for a source
// file from its path relative to the project root: path separators become
// dots and the extension is stripped. A file at the root maps to a
// top-level, dot-free name.
func ModuleIdentifier(relPath string) string {
	slashed := filepath.ToSlash(relPath)
	trimmed := strings.TrimSuffix(slashed, pyast.SourceExtension)
	return strings.ReplaceAll(trimmed, "/", ".")
}
