package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := Default()
	if s.SolverFamily != "minion" {
		t.Errorf("expected the default solver family to be minion, got %s", s.SolverFamily)
	}
	if len(s.RuleSets) == 0 {
		t.Error("expected a non-empty default rule set list")
	}
	if s.Log.Level != "info" || s.Log.Format != "text" {
		t.Errorf("expected default logging to be info/text, got %+v", s.Log)
	}
}

func TestLoadReturnsDefaultsWhenFileMissing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Default()
	if s.SolverFamily != want.SolverFamily || s.Log != want.Log || len(s.RuleSets) != len(want.RuleSets) {
		t.Errorf("expected Load to fall back to Default() for a missing file, got %+v", s)
	}
}

func TestLoadOverridesDefaultsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essence.toml")
	contents := `
rule_sets = ["base", "sat_encoding"]
solver_family = "sat"
solver_target = "localhost:50051"
check_ambiguous_rules = true
trace_db_path = "trace.db"

[log]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SolverFamily != "sat" {
		t.Errorf("expected solver_family to be overridden to sat, got %s", s.SolverFamily)
	}
	if !s.CheckAmbiguousRules {
		t.Error("expected check_ambiguous_rules to be overridden to true")
	}
	if s.Log.Level != "debug" || s.Log.Format != "json" {
		t.Errorf("expected log settings to be overridden, got %+v", s.Log)
	}
	if len(s.RuleSets) != 2 || s.RuleSets[1] != "sat_encoding" {
		t.Errorf("expected rule_sets to be overridden, got %v", s.RuleSets)
	}
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not = [valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}
