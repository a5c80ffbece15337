package pyast

import (
	"context"
	"errors"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestParseProducesTree(t *testing.T) {
	source := []byte("def f():\n    return 1\n")
	root, err := NewParser().Parse(context.Background(), "f.py", source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if root.Type() != "module" {
		t.Errorf("root type = %q, want module", root.Type())
	}
}

func TestWalkVisitsAllDepths(t *testing.T) {
	source := []byte("def outer():\n    def inner():\n        if True:\n            pass\n")
	root, err := NewParser().Parse(context.Background(), "f.py", source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	functions := 0
	Walk(root, func(n *sitter.Node) {
		if n.Type() == "function_definition" {
			functions++
		}
	})
	if functions != 2 {
		t.Errorf("visited %d function definitions, want 2", functions)
	}
}

func TestCountNodes(t *testing.T) {
	source := []byte("if a:\n    pass\nfor i in x:\n    while i:\n        i -= 1\n")
	root, err := NewParser().Parse(context.Background(), "f.py", source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	got := CountNodes(root, map[string]bool{
		"if_statement":    true,
		"for_statement":   true,
		"while_statement": true,
	})
	if got != 3 {
		t.Errorf("CountNodes = %d, want 3", got)
	}
}

func TestNodeText(t *testing.T) {
	source := []byte("def handler():\n    pass\n")
	root, err := NewParser().Parse(context.Background(), "f.py", source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var name string
	Walk(root, func(n *sitter.Node) {
		if n.Type() == "function_definition" {
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				name = NodeText(nameNode, source)
			}
		}
	})
	if name != "handler" {
		t.Errorf("name = %q, want handler", name)
	}
}

func TestParseRejectsInvalidSyntax(t *testing.T) {
	source := []byte("def ok():\n    return 1\n\ndef broken(:\n")
	_, err := NewParser().Parse(context.Background(), "bad.py", source)
	if err == nil {
		t.Fatal("Parse should fail on invalid syntax")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if parseErr.Path != "bad.py" {
		t.Errorf("Path = %q, want bad.py", parseErr.Path)
	}
}

func TestParseErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := &ParseError{Path: "x.py", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("ParseError should unwrap to its cause")
	}
	if err.Error() != "parse x.py: boom" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
