// Package config loads essence's TOML settings file (spec.md §6
// "Configuration"): which rule sets to activate, which solver family and
// adaptor target to dispatch to, and rewriter debug flags.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Settings is the top-level shape of an essence.toml file.
type Settings struct {
	RuleSets []string `toml:"rule_sets"`

	SolverFamily string `toml:"solver_family"`
	SolverTarget string `toml:"solver_target"`

	CheckAmbiguousRules bool `toml:"check_ambiguous_rules"`
	ExitAfterUnrolling  bool `toml:"exit_after_unrolling"`

	// IntEncoding selects which finite-Int SAT representation strategy
	// (sat_order, sat_direct_int, sat_log_int) applies to finite Int
	// decision variables (spec.md §4.5). cmd/essence applies any non-empty
	// value whatever SolverFamily is, and the "representation" rule set
	// is active for both the "minion" and "sat" families.
	IntEncoding string `toml:"int_encoding"`

	TraceDBPath string `toml:"trace_db_path"`

	Log LogSettings `toml:"log"`
}

// LogSettings configures structured logging output.
type LogSettings struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the settings essence uses when no config file is found:
// the base rule sets over a fake in-memory solver, info-level text
// logging, and no persisted trace database.
func Default() Settings {
	return Settings{
		RuleSets: []string{
			"base", "bubble", "flatten",
			"minion_arith", "representation", "comprehension_expansion",
		},
		SolverFamily: "minion",
		IntEncoding:  "sat_order",
		Log:          LogSettings{Level: "info", Format: "text"},
	}
}

// Load reads and parses a TOML settings file at path, filling in Default()
// for any field the file does not set.
func Load(path string) (Settings, error) {
	settings := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return Settings{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return settings, nil
}
