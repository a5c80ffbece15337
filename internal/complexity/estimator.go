// Package complexity estimates the structural complexity of Python
// functions from their syntax subtrees.
package complexity

import (
	sitter "github.com/smacker/go-tree-sitter"

	"codeaudit/internal/pyast"
)

// branchKinds are the node types that contribute to a function's score:
// conditionals, loops, exception handlers, and scoped-resource blocks.
// An elif clause counts as its own conditional, matching how chained
// conditionals nest in Python's own AST.
var branchKinds = map[string]bool{
	"if_statement":    true,
	"elif_clause":     true,
	"for_statement":   true,
	"while_statement": true,
	"try_statement":   true,
	"with_statement":  true,
}

// Estimate returns 1 plus the number of branching, looping, exception, and
// resource-scope constructs anywhere within the function subtree. Bodies of
// nested functions and classes are included, so an outer function's score
// also counts branches contributed by functions defined inside it.
//
// This is a node-kind count, not exact cyclomatic complexity: boolean
// operators, comprehension clauses, and match statements do not contribute.
func Estimate(fn *sitter.Node) int {
	return 1 + pyast.CountNodes(fn, branchKinds)
}
