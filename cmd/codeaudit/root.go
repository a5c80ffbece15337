package main

import (
	"github.com/spf13/cobra"

	"codeaudit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "codeaudit [directory]",
	Short: "codeaudit - Python codebase audit tool",
	Long: `codeaudit analyzes a Python project directory and produces a structured
set of facts about the codebase's shape: per-function structural complexity,
per-class method inventories, entry points, data files, and an intra-project
module dependency graph, rendered as a Markdown audit report.`,
	Version:       version.Info(),
	Args:          cobra.MaximumNArgs(1),
	RunE:          runAudit,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.Flags().StringVar(&auditOutput, "output", "", "Output Markdown file name (default codebase_audit_report.md)")
	rootCmd.Flags().StringVar(&auditFormat, "format", "markdown", "Output format (markdown, json, yaml)")
	rootCmd.Flags().IntVar(&auditWorkers, "workers", 0, "Concurrent file analyzers (default: number of CPUs)")
	rootCmd.Flags().BoolVar(&auditGraph, "graph", true, "Write the dependency graph as a Graphviz DOT file")
	rootCmd.Flags().StringVar(&auditLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}
