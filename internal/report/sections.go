package report

import (
	"fmt"
	"sort"
	"strings"

	"codeaudit/internal/audit"
	"codeaudit/internal/discovery"
)

// componentRule assigns a module to an architecture component. Rules are
// evaluated in order; the first match wins.
type componentRule struct {
	label string
	match func(module string) bool
}

func prefixRule(label, prefix string) componentRule {
	return componentRule{label: label, match: func(m string) bool {
		return strings.HasPrefix(m, prefix)
	}}
}

var componentRules = []componentRule{
	prefixRule("User Interface (Pages)", "pages"),
	prefixRule("Optimization Strategies", "src.strategies"),
	{label: "Business Logic / Pipelines", match: func(m string) bool {
		return strings.Contains(m, "pipeline") || strings.Contains(m, "run")
	}},
	{label: "Data Models & Schemas", match: func(m string) bool {
		return strings.HasPrefix(m, "src.models") || strings.HasPrefix(m, "src.schemas")
	}},
	prefixRule("Data Processing", "src.data_"),
	prefixRule("Support Utilities", "src.utils"),
	prefixRule("Configuration", "src.config"),
	prefixRule("Tests", "tests"),
	{label: "Main Entry Point", match: func(m string) bool { return m == "app" }},
}

const otherComponent = "Other Components"

// componentFor returns the architecture component label for a module.
func componentFor(module string) string {
	for _, rule := range componentRules {
		if rule.match(module) {
			return rule.label
		}
	}
	return otherComponent
}

var dataKindLabels = map[discovery.DataFileKind]string{
	discovery.KindTabular:        "Tabular Data",
	discovery.KindSpreadsheet:    "Excel Sheet",
	discovery.KindStructuredData: "JSON Data",
	discovery.KindConfig:         "Config",
}

// Write renders all report sections from the store. graphPath, when
// non-empty, names a dependency-graph artifact referenced from the report.
func Write(gen *Generator, store *audit.Store, graphPath string) {
	writeSummaryStats(gen, store)
	writeArchitectureOverview(gen, store)
	writeLogicalFlow(gen, store)
	writeDataFlow(gen, store)
	writeDependencyReport(gen, store, graphPath)
}

func writeSummaryStats(gen *Generator, store *audit.Store) {
	gen.AddTitle("Project Statistics", 2)

	sum := store.Summary()
	gen.AddTable([]string{"Metric", "Value"}, [][]string{
		{"Python Files Analyzed", fmt.Sprintf("%d", sum.Files)},
		{"Project Modules", fmt.Sprintf("%d", sum.Modules)},
		{"Total Functions", fmt.Sprintf("%d", sum.Functions)},
		{"Total Classes", fmt.Sprintf("%d", sum.Classes)},
		{"Optimization Strategies", fmt.Sprintf("%d", sum.StrategyClasses)},
		{"Avg. Function Complexity", fmt.Sprintf("%.2f", sum.AverageComplexity)},
		{"Internal Dependency Links", fmt.Sprintf("%d", sum.DependencyEdges)},
	})
}

func writeArchitectureOverview(gen *Generator, store *audit.Store) {
	gen.AddTitle("Architecture Overview", 2)

	components := make(map[string][]string)
	for _, module := range store.SortedModules() {
		label := componentFor(module)
		components[label] = append(components[label], module)
	}

	labels := make([]string, 0, len(components))
	for label := range components {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		modules := components[label]
		gen.AddTitle(fmt.Sprintf("%s (%d modules)", label, len(modules)), 3)
		gen.AddList(modules, false)
	}
}

func writeLogicalFlow(gen *Generator, store *audit.Store) {
	gen.AddTitle("Logical & Execution Flow", 2)

	gen.AddTitle("Detected Entry Points", 3)
	entryPoints := store.EntryPoints()
	entryPoints["app"] = true
	var entries []string
	for _, m := range sortedSet(entryPoints) {
		entries = append(entries, "`"+m+"`")
	}
	gen.AddList(entries, false)

	classes := store.Classes()
	var strategies []string
	for key, cls := range classes {
		if cls.IsStrategy {
			strategies = append(strategies, key)
		}
	}
	if len(strategies) > 0 {
		sort.Strings(strategies)
		gen.AddTitle("Optimization Strategies", 3)
		rows := make([][]string, 0, len(strategies))
		for _, key := range strategies {
			rows = append(rows, []string{"`" + key + "`", methodPreview(classes[key].Methods)})
		}
		gen.AddTable([]string{"Strategy Class", "Key Methods"}, rows)
	}

	functions := store.Functions()
	var pipelineFuncs []string
	for key := range functions {
		if strings.Contains(key, "pipeline") || strings.Contains(key, "run") || strings.Contains(key, "solve") {
			pipelineFuncs = append(pipelineFuncs, key)
		}
	}
	if len(pipelineFuncs) > 0 {
		sort.Strings(pipelineFuncs)
		gen.AddTitle("Key Pipeline Functions", 3)
		rows := make([][]string, 0, len(pipelineFuncs))
		for _, key := range pipelineFuncs {
			rows = append(rows, []string{"`" + key + "`", fmt.Sprintf("%d", functions[key].Complexity)})
		}
		gen.AddTable([]string{"Function", "Estimated Complexity"}, rows)
	}
}

// methodPreview lists a class's first four methods, marking truncation.
func methodPreview(methods []string) string {
	if len(methods) > 4 {
		return strings.Join(methods[:4], ", ") + "..."
	}
	return strings.Join(methods, ", ")
}

var dataFuncWords = []string{"load", "save", "process", "read", "write", "preprocess"}

func writeDataFlow(gen *Generator, store *audit.Store) {
	gen.AddTitle("Data Flow Analysis", 2)

	dataFiles := store.DataFiles()
	if len(dataFiles) > 0 {
		gen.AddTitle("Identified Data Files", 3)
		rows := make([][]string, 0, len(dataFiles))
		for _, df := range dataFiles {
			rows = append(rows, []string{"`" + df.Path + "`", dataKindLabels[df.Kind]})
		}
		gen.AddTable([]string{"File Path", "Type"}, rows)
	}

	var dataFuncs []string
	for key := range store.Functions() {
		for _, word := range dataFuncWords {
			if strings.Contains(key, word) {
				dataFuncs = append(dataFuncs, "`"+key+"`")
				break
			}
		}
	}
	if len(dataFuncs) > 0 {
		sort.Strings(dataFuncs)
		gen.AddTitle("Data Manipulation Functions", 3)
		gen.AddList(dataFuncs, false)
	}
}

func writeDependencyReport(gen *Generator, store *audit.Store, graphPath string) {
	gen.AddTitle("Internal Dependency Map", 2)

	if graphPath != "" {
		gen.AddTitle("Visual Dependency Graph", 3)
		gen.AddImage(graphPath, "Dependency map of the project modules")
	}

	gen.AddTitle("Textual Dependency Report", 3)
	deps := store.Dependencies()
	sources := make([]string, 0, len(deps))
	for src := range deps {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	for _, src := range sources {
		gen.AddParagraph(fmt.Sprintf("**`%s`** depends on:", src))
		targets := sortedSet(deps[src])
		if len(targets) == 0 {
			gen.AddList([]string{"(No internal dependencies)"}, false)
			continue
		}
		items := make([]string, 0, len(targets))
		for _, t := range targets {
			items = append(items, "`"+t+"`")
		}
		gen.AddList(items, false)
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
