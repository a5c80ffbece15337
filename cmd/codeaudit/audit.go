package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codeaudit/internal/audit"
	"codeaudit/internal/config"
	"codeaudit/internal/depgraph"
	"codeaudit/internal/export"
	"codeaudit/internal/logging"
	"codeaudit/internal/report"
)

var (
	auditOutput   string
	auditFormat   string
	auditWorkers  int
	auditGraph    bool
	auditLogLevel string
)

func runAudit(cmd *cobra.Command, args []string) error {
	start := time.Now()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("directory %q not found", root)
	}

	// Reject a bad format before spending the whole pass on it.
	var exportFormat export.Format
	if auditFormat != "markdown" {
		exportFormat, err = export.ParseFormat(auditFormat)
		if err != nil {
			return err
		}
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)

	logFormat, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return err
	}
	logLevel, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logLevel,
	})

	auditor := audit.New(logger,
		audit.WithWorkers(cfg.Workers),
		audit.WithExcludedDirs(cfg.ExcludeDirs),
	)

	store, err := auditor.Run(context.Background(), root)
	if err != nil {
		return err
	}

	switch auditFormat {
	case "markdown":
		if err := writeReport(cfg, store, logger); err != nil {
			return err
		}
	default:
		data, err := export.Marshal(export.Snapshot(store), exportFormat)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}

	logger.Info("Audit complete", map[string]interface{}{
		"elapsed": time.Since(start).Round(time.Millisecond).String(),
	})
	return nil
}

// applyFlags lets explicitly set flags override the file config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if auditOutput != "" {
		cfg.ReportFile = auditOutput
	}
	if auditWorkers > 0 {
		cfg.Workers = auditWorkers
	}
	if cmd.Flags().Changed("graph") {
		cfg.Graph = auditGraph
	}
	if auditLogLevel != "" {
		cfg.Logging.Level = auditLogLevel
	}
}

// writeReport renders the Markdown report and, when enabled, the
// dependency-graph artifact it references.
func writeReport(cfg *config.Config, store *audit.Store, logger *logging.Logger) error {
	var renderer depgraph.Renderer = depgraph.Noop{}
	graphPath := ""
	deps := store.Dependencies()
	if cfg.Graph && len(deps) > 0 {
		renderer = depgraph.DOT{}
		graphPath = cfg.GraphFile
	}

	if err := renderer.Render(deps, graphPath); err != nil {
		// Rendering is optional; its failure must not lose the report.
		logger.Warn("Could not render dependency graph", map[string]interface{}{
			"path":  graphPath,
			"error": err.Error(),
		})
		graphPath = ""
	}

	gen := report.NewGenerator(cfg.ReportFile)
	report.Write(gen, store, graphPath)
	if err := gen.Save(); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	logger.Info("Report saved", map[string]interface{}{
		"path": cfg.ReportFile,
	})
	return nil
}
