// Package extract walks parsed Python trees and produces the per-file
// facts the audit aggregates: functions, classes, imports, entry points.
package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"codeaudit/internal/complexity"
	"codeaudit/internal/pyast"
	"codeaudit/internal/resolve"
)

// FunctionRecord describes one function definition. Nested definitions get
// their own record; complexity is scored over the function's full subtree,
// nested scopes included.
type FunctionRecord struct {
	Module     string `json:"module"`
	Name       string `json:"name"`
	Complexity int    `json:"complexity"`
}

// Key returns the record's identifier, module.functionName.
func (f FunctionRecord) Key() string {
	return f.Module + "." + f.Name
}

// ClassRecord describes one class definition. Methods lists the class's
// immediate function-definition children in source order; functions inside
// nested classes are not pulled up.
type ClassRecord struct {
	Module     string   `json:"module"`
	Name       string   `json:"name"`
	Methods    []string `json:"methods"`
	IsStrategy bool     `json:"isStrategy"`
}

// Key returns the record's identifier, module.ClassName.
func (c ClassRecord) Key() string {
	return c.Module + "." + c.Name
}

// FileFacts holds everything extracted from one parsed source file.
type FileFacts struct {
	Module    string
	Functions []FunctionRecord
	Classes   []ClassRecord
	Imports   []resolve.Import
}

// HasEntryPoint reports whether raw file text contains the top-level
// execution guard. It works on unparsed text so a file that fails to parse
// can still be recognized as an entry point.
func HasEntryPoint(source []byte) bool {
	return strings.Contains(string(source), pyast.EntryPointGuard)
}

// File walks the entire tree, all nesting depths included, and collects
// function records, class records, and import candidates for the module.
func File(root *sitter.Node, source []byte, module string) *FileFacts {
	facts := &FileFacts{Module: module}

	pyast.Walk(root, func(node *sitter.Node) {
		switch node.Type() {
		case "function_definition":
			if name := fieldText(node, "name", source); name != "" {
				facts.Functions = append(facts.Functions, FunctionRecord{
					Module:     module,
					Name:       name,
					Complexity: complexity.Estimate(node),
				})
			}

		case "class_definition":
			if name := fieldText(node, "name", source); name != "" {
				facts.Classes = append(facts.Classes, ClassRecord{
					Module:     module,
					Name:       name,
					Methods:    classMethods(node, source),
					IsStrategy: IsStrategy(name, module),
				})
			}

		case "import_statement":
			facts.Imports = append(facts.Imports, plainImports(node, source)...)

		case "import_from_statement":
			facts.Imports = append(facts.Imports, fromImports(node, source)...)
		}
	})

	return facts
}

// IsStrategy reports whether a class counts as an optimization-strategy
// implementation: its own name contains "strategy" or "strategies"
// (case-insensitive), or the owning module's dotted path has a
// "strategies" component.
func IsStrategy(className, module string) bool {
	lower := strings.ToLower(className)
	if strings.Contains(lower, "strategy") || strings.Contains(lower, "strategies") {
		return true
	}
	for _, segment := range strings.Split(module, ".") {
		if segment == "strategies" {
			return true
		}
	}
	return false
}

// classMethods collects names of function definitions that are immediate
// children of the class body. Decorated methods still count; methods of
// nested classes do not.
func classMethods(class *sitter.Node, source []byte) []string {
	body := class.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var methods []string
	for i := uint32(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(int(i))
		if child == nil {
			continue
		}

		def := child
		if child.Type() == "decorated_definition" {
			def = child.ChildByFieldName("definition")
			if def == nil {
				continue
			}
		}
		if def.Type() != "function_definition" {
			continue
		}
		if name := fieldText(def, "name", source); name != "" {
			methods = append(methods, name)
		}
	}
	return methods
}

// plainImports handles `import a.b.c, d as e`: every listed name is its own
// absolute candidate.
func plainImports(node *sitter.Node, source []byte) []resolve.Import {
	var imports []resolve.Import
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(int(i))
		if child == nil {
			continue
		}
		if target := importedName(child, source); target != "" {
			imports = append(imports, resolve.Import{Target: target})
		}
	}
	return imports
}

// fromImports handles `from x.y import z` and its relative forms. A
// from-import with a module part yields that module part as the single
// candidate. A purely relative import (`from . import a, b`) has no module
// part, so each imported name becomes its own candidate at the relative
// level.
func fromImports(node *sitter.Node, source []byte) []resolve.Import {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return nil
	}

	switch moduleNode.Type() {
	case "dotted_name":
		return []resolve.Import{{Target: pyast.NodeText(moduleNode, source)}}

	case "relative_import":
		level, target := splitRelativeImport(moduleNode, source)
		if target != "" {
			return []resolve.Import{{Target: target, Level: level}}
		}

		var imports []resolve.Import
		for _, name := range importedNames(node, moduleNode, source) {
			imports = append(imports, resolve.Import{Target: name, Level: level})
		}
		if len(imports) == 0 {
			// `from . import *` and friends: the base itself is the candidate.
			imports = append(imports, resolve.Import{Level: level})
		}
		return imports
	}

	return nil
}

// splitRelativeImport breaks a relative_import node into its dot count and
// optional dotted module part.
func splitRelativeImport(node *sitter.Node, source []byte) (level int, target string) {
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child == nil {
			continue
		}
		switch child.Type() {
		case "import_prefix":
			level = strings.Count(pyast.NodeText(child, source), ".")
		case "dotted_name":
			target = pyast.NodeText(child, source)
		}
	}
	return level, target
}

// importedNames lists the names after the `import` keyword of a
// from-import, skipping the module part and wildcard imports.
func importedNames(node, moduleNode *sitter.Node, source []byte) []string {
	var names []string
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(int(i))
		if child == nil || child.StartByte() <= moduleNode.StartByte() {
			continue
		}
		if name := importedName(child, source); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// importedName extracts the module-relevant name from a dotted_name or
// aliased_import node. Aliases resolve to the original name, not the alias.
func importedName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "dotted_name":
		return pyast.NodeText(node, source)
	case "aliased_import":
		if name := node.ChildByFieldName("name"); name != nil {
			return pyast.NodeText(name, source)
		}
	}
	return ""
}

// fieldText returns the text of a named field child, or "" when absent.
func fieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return pyast.NodeText(child, source)
}
