// Package pyast provides tree-sitter based parsing of Python source files.
package pyast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SourceExtension is the file extension recognized as Python source.
const SourceExtension = ".py"

// EntryPointGuard is the raw-text marker for a top-level execution guard.
// Detection is a substring match on file content and does not require a
// successful parse.
const EntryPointGuard = `if __name__ == "__main__"`

// ParseError reports that a single file could not be parsed. Parse failures
// are recoverable: the file stays counted among discovered files but yields
// no symbols or dependencies.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser wraps a tree-sitter parser configured for Python.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new Python parser. A Parser is not safe for
// concurrent use; create one per worker.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses source text into a syntax tree and returns its root node.
func (p *Parser) Parse(ctx context.Context, path string, source []byte) (*sitter.Node, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	root := tree.RootNode()
	if root == nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("no syntax tree produced")}
	}
	// tree-sitter recovers from invalid syntax instead of failing, so a
	// broken file still yields a tree. Facts extracted from an
	// error-recovered tree are unreliable; reject the file instead.
	if root.HasError() {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("source contains syntax errors")}
	}
	return root, nil
}

// NodeText returns the source text covered by a node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// Walk visits every node in the subtree rooted at node in depth-first
// order, calling visit for each.
func Walk(node *sitter.Node, visit func(*sitter.Node)) {
	if node == nil {
		return
	}

	visit(node)
	for i := uint32(0); i < node.ChildCount(); i++ {
		Walk(node.Child(int(i)), visit)
	}
}

// CountNodes returns the number of nodes in the subtree whose type is in
// kinds, including node itself.
func CountNodes(node *sitter.Node, kinds map[string]bool) int {
	count := 0
	Walk(node, func(n *sitter.Node) {
		if kinds[n.Type()] {
			count++
		}
	})
	return count
}
