package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aexoden/norms/internal/rules"
	"github.com/aexoden/norms/internal/rulesdsl"
	"github.com/aexoden/norms/internal/shared"
)

const version = "0.3.0"

var (
	// Global flags
	cfgFile string
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:   "norms",
	Short: "Repository conformance checker",
	Long: `norms verifies that a repository follows the organizational
development standards: required files, editor configuration, commit
message conventions, CI wiring, and language-specific project layout.

Core commands:
  verify    Scan a repository and report conformance findings
  report    Re-emit a stored run
  diff      Compare two stored runs
  rules     List the registered rules
  serve     Read-only API over the run history`,
	SilenceUsage: true,
}

// Execute runs the CLI. Commands that define their own exit-code policy
// (verify) exit directly; everything else maps errors to exit 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to YAML config (optional)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path")
}

// setup loads config, wires logging and rule settings, and registers any
// configured rule packs. Shared by every subcommand.
func setup() shared.Config {
	cfg, err := shared.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "norms: %v\n", err)
		os.Exit(2)
	}
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	disabled := map[string]bool{}
	for _, id := range cfg.Rules.Disabled {
		disabled[id] = true
	}
	rules.SetSettings(rules.Settings{
		Disabled:      disabled,
		SubjectMaxLen: cfg.Rules.SubjectMaxLen,
		BodyWrapLimit: cfg.Rules.BodyWrapLimit,
	})

	for _, pack := range cfg.Rules.Packs {
		if _, err := rulesdsl.LoadAndRegister(pack); err != nil {
			fmt.Fprintf(os.Stderr, "norms: rule pack %s: %v\n", pack, err)
			os.Exit(2)
		}
	}

	if dbPath == "" {
		dbPath = cfg.Database.DSN
	}
	return cfg
}
