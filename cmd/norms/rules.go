package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aexoden/norms/internal/rules"
)

var rulesJSON bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		setup()
		rs := rules.List()
		if rulesJSON {
			type row struct {
				ID       string `json:"id"`
				Category string `json:"category"`
				Severity string `json:"severity"`
				Summary  string `json:"summary"`
				Language string `json:"language,omitempty"`
			}
			out := make([]row, 0, len(rs))
			for _, r := range rs {
				out = append(out, row{
					ID:       r.ID,
					Category: string(r.Category),
					Severity: string(r.Severity),
					Summary:  r.Summary,
					Language: string(r.Language),
				})
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		for _, r := range rs {
			scope := "all"
			if r.Language != "" {
				scope = string(r.Language)
			}
			fmt.Printf("%-28s %-18s %-8s %-10s %s\n", r.ID, r.Category, r.Severity, scope, r.Summary)
		}
		return nil
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesJSON, "json", false, "Emit JSON")
	rootCmd.AddCommand(rulesCmd)
}
