package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.ReportFile != defaults.ReportFile {
		t.Errorf("ReportFile = %q, want %q", cfg.ReportFile, defaults.ReportFile)
	}
	if cfg.GraphFile != defaults.GraphFile {
		t.Errorf("GraphFile = %q, want %q", cfg.GraphFile, defaults.GraphFile)
	}
	if !cfg.Graph {
		t.Error("Graph should default to true")
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "info" {
		t.Errorf("Logging defaults = %+v", cfg.Logging)
	}
	if len(cfg.ExcludeDirs) == 0 {
		t.Error("ExcludeDirs should carry defaults")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	root := t.TempDir()
	content := `reportFile: audit.md
workers: 3
graph: false
excludeDirs:
  - vendor
  - .venv
logging:
  format: json
  level: debug
`
	if err := os.WriteFile(filepath.Join(root, ".codeaudit.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ReportFile != "audit.md" {
		t.Errorf("ReportFile = %q", cfg.ReportFile)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Graph {
		t.Error("Graph should be disabled by the file")
	}
	if len(cfg.ExcludeDirs) != 2 || cfg.ExcludeDirs[0] != "vendor" {
		t.Errorf("ExcludeDirs = %v", cfg.ExcludeDirs)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	// Fields the file omits keep their defaults.
	if cfg.GraphFile != DefaultConfig().GraphFile {
		t.Errorf("GraphFile = %q, want default", cfg.GraphFile)
	}
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".codeaudit.yaml"), []byte("workers: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(root); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	t.Run("normalizes workers", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Workers = 0
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if cfg.Workers != runtime.NumCPU() {
			t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
		}
	})

	t.Run("rejects empty report file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ReportFile = ""
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "reportFile") {
			t.Errorf("error should name the field: %v", err)
		}
	})

	t.Run("rejects empty graph file only when graph enabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.GraphFile = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error with graph enabled")
		}

		cfg = DefaultConfig()
		cfg.Graph = false
		cfg.GraphFile = ""
		if err := cfg.Validate(); err != nil {
			t.Errorf("graph disabled should not require a graph file: %v", err)
		}
	})
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "workers", Message: "bad"}
	want := "config error in field 'workers': bad"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
