package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aexoden/norms/internal/facts"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("norms %s (facts schema %s)\n", version, facts.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
