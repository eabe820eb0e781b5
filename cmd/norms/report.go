package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aexoden/norms/internal/report"
	"github.com/aexoden/norms/internal/storage"
)

var (
	reportRun string
	reportOut string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Re-emit a stored run",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		if reportOut == "" {
			reportOut = cfg.Reporting.OutDir
		}
		if reportRun == "" {
			return fmt.Errorf("--run is required")
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("db open: %w", err)
		}
		defer db.Close()

		rep, err := db.LoadRun(reportRun)
		if err != nil {
			return fmt.Errorf("load run %s: %w", reportRun, err)
		}
		if err := os.MkdirAll(reportOut, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
		jsonPath, _ := report.WriteJSON(rep.ID, reportOut, &rep)
		htmlPath, _ := report.WriteHTML(rep.ID, reportOut, &rep)
		slog.Info("report written", "run", rep.ID, "json", jsonPath, "html", htmlPath)
		fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", rep.ID, jsonPath, htmlPath)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportRun, "run", "", "Run ID")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Output directory")
	rootCmd.AddCommand(reportCmd)
}
