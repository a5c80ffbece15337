// Package report renders the results of an audit pass into a Markdown
// document.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFilename is the report written when no output is configured.
const DefaultFilename = "codebase_audit_report.md"

// Generator accumulates Markdown content and writes it as one document.
type Generator struct {
	filename string
	content  []string
}

// NewGenerator creates a Generator for the given output file and adds the
// document title.
func NewGenerator(filename string) *Generator {
	g := &Generator{filename: filename}
	g.AddTitle("Codebase Audit Report", 1)
	return g
}

// AddTitle appends a heading at the given level.
func (g *Generator) AddTitle(text string, level int) {
	g.content = append(g.content, fmt.Sprintf("%s %s\n", strings.Repeat("#", level), text))
}

// AddParagraph appends a text paragraph.
func (g *Generator) AddParagraph(text string) {
	g.content = append(g.content, text+"\n")
}

// AddList appends a bulleted or numbered list.
func (g *Generator) AddList(items []string, numbered bool) {
	for i, item := range items {
		prefix := "-"
		if numbered {
			prefix = fmt.Sprintf("%d.", i+1)
		}
		g.content = append(g.content, fmt.Sprintf("%s %s", prefix, item))
	}
	g.content = append(g.content, "")
}

// AddTable appends a GitHub-style pipe table.
func (g *Generator) AddTable(headers []string, rows [][]string) {
	g.content = append(g.content, "| "+strings.Join(headers, " | ")+" |")

	separators := make([]string, len(headers))
	for i := range separators {
		separators[i] = "---"
	}
	g.content = append(g.content, "| "+strings.Join(separators, " | ")+" |")

	for _, row := range rows {
		g.content = append(g.content, "| "+strings.Join(row, " | ")+" |")
	}
	g.content = append(g.content, "\n")
}

// AddImage appends an image reference. Only the file name is used so the
// report stays portable next to its artifacts.
func (g *Generator) AddImage(path, altText string) {
	g.content = append(g.content, fmt.Sprintf("![%s](%s)\n", altText, filepath.Base(path)))
}

// Render returns the accumulated document.
func (g *Generator) Render() string {
	return strings.Join(g.content, "\n")
}

// Save writes the document to the configured file.
func (g *Generator) Save() error {
	return os.WriteFile(g.filename, []byte(g.Render()), 0644)
}
