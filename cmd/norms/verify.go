package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aexoden/norms/internal/report"
	"github.com/aexoden/norms/internal/rules"
	"github.com/aexoden/norms/internal/scanner"
	"github.com/aexoden/norms/internal/storage"
)

var (
	verifyFormat string
	verifyStrict bool
	verifyOut    string
	verifySave   bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Scan a repository and report conformance findings",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runVerify(args))
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFormat, "format", "text", "Output format (text|json)")
	verifyCmd.Flags().BoolVar(&verifyStrict, "strict", false, "Warnings also produce a non-zero exit code")
	verifyCmd.Flags().StringVar(&verifyOut, "out", "", "Also write JSON and HTML reports to this directory")
	verifyCmd.Flags().BoolVar(&verifySave, "save", false, "Record the run in the database")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(args []string) int {
	cfg := setup()

	if verifyFormat != "text" && verifyFormat != "json" {
		fmt.Fprintf(os.Stderr, "verify: unknown format %q (use text or json)\n", verifyFormat)
		return 2
	}

	// precedence: arg > NORMS_ROOT (applied by config) > config default
	root := cfg.Scan.Root
	if len(args) == 1 {
		root = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fx, err := scanner.Scan(ctx, root, scanner.Options{
		MaxCommits:  cfg.Scan.MaxCommits,
		MaxFileSize: cfg.Scan.MaxFileSize,
		RequireGit:  cfg.RequireGit(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "verify:", err)
		return report.ExitScanError
	}

	findings, err := rules.Evaluate(ctx, fx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "verify: cancelled:", err)
		return report.ExitScanError
	}

	rep := report.New("run-"+uuid.NewString(), fx, findings)

	var db *storage.DB
	if verifySave {
		db, err = storage.Open(dbPath)
		if err != nil {
			slog.Error("db open error", "err", err)
			return report.ExitScanError
		}
		defer db.Close()
		if err := db.CreateSchema(); err != nil {
			slog.Error("db schema error", "err", err)
			return report.ExitScanError
		}
		if ws, err := db.ListWaivers(true); err == nil && len(ws) > 0 {
			var waived int
			rep.Findings, waived = storage.ApplyWaivers(rep.Findings, ws)
			rep.Recount()
			if waived > 0 {
				slog.Info("waivers applied", "count", waived)
			}
		}
		if err := db.SaveRun(rep); err != nil {
			slog.Error("db save run error", "err", err)
			return report.ExitScanError
		}
	}

	if verifyOut != "" {
		if err := os.MkdirAll(verifyOut, 0o755); err != nil {
			fmt.Fprintln(os.Stderr, "verify: cannot create out dir:", err)
			return report.ExitScanError
		}
		jsonPath, _ := report.WriteJSON(rep.ID, verifyOut, rep)
		htmlPath, _ := report.WriteHTML(rep.ID, verifyOut, rep)
		slog.Info("reports written", "run", rep.ID, "json", jsonPath, "html", htmlPath)
	}

	if verifyFormat == "json" {
		if err := report.EmitJSON(os.Stdout, rep); err != nil {
			fmt.Fprintln(os.Stderr, "verify: emit:", err)
			return report.ExitScanError
		}
	} else {
		_ = report.WriteText(os.Stdout, rep)
	}

	return report.ExitCode(rep, verifyStrict)
}
