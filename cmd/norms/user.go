package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aexoden/norms/internal/security"
	"github.com/aexoden/norms/internal/storage"
)

var (
	userName     string
	userPassword string
	userRole     string
)

var userAddCmd = &cobra.Command{
	Use:   "user-add",
	Short: "Create an API user",
	RunE: func(cmd *cobra.Command, args []string) error {
		setup()
		if userName == "" || userPassword == "" {
			return fmt.Errorf("--username and --password are required")
		}
		if userRole != "viewer" && userRole != "admin" {
			return fmt.Errorf("role must be viewer or admin")
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("db open: %w", err)
		}
		defer db.Close()
		if err := db.CreateSchema(); err != nil {
			return fmt.Errorf("db schema: %w", err)
		}

		hash, err := security.HashPassword(userPassword)
		if err != nil {
			return err
		}
		id, err := db.CreateUser(userName, hash, userRole)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		fmt.Printf("User OK\n  ID: %d\n  Username: %s\n  Role: %s\n", id, userName, userRole)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userName, "username", "", "Username")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "Password")
	userAddCmd.Flags().StringVar(&userRole, "role", "viewer", "Role (viewer|admin)")
	rootCmd.AddCommand(userAddCmd)
}
