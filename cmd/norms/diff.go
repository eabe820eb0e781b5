package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aexoden/norms/internal/report"
	"github.com/aexoden/norms/internal/storage"
)

var (
	diffBase string
	diffHead string
	diffOut  string
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare two stored runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		if diffOut == "" {
			diffOut = cfg.Reporting.OutDir
		}
		if diffBase == "" || diffHead == "" {
			return fmt.Errorf("--base and --head are required")
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("db open: %w", err)
		}
		defer db.Close()

		br, err := db.LoadRun(diffBase)
		if err != nil {
			return fmt.Errorf("load base run: %w", err)
		}
		hr, err := db.LoadRun(diffHead)
		if err != nil {
			return fmt.Errorf("load head run: %w", err)
		}
		if err := os.MkdirAll(diffOut, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
		path, err := report.WriteDiffJSON(diffOut, &br, &hr)
		if err != nil {
			return err
		}
		fmt.Printf("Diff OK\n  %s\n", path)
		return nil
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffBase, "base", "", "Base run ID")
	diffCmd.Flags().StringVar(&diffHead, "head", "", "Head run ID")
	diffCmd.Flags().StringVar(&diffOut, "out", "", "Output directory")
	rootCmd.AddCommand(diffCmd)
}
