package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/aexoden/norms/internal/api"
	"github.com/aexoden/norms/internal/storage"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Read-only API over the run history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		if serveAddr == "" {
			serveAddr = cfg.Server.Addr
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("db open: %w", err)
		}
		defer db.Close()
		if err := db.CreateSchema(); err != nil {
			return fmt.Errorf("db schema: %w", err)
		}

		srv := &api.Server{
			DB:              db,
			UserStore:       db,
			Logger:          slog.Default(),
			AllowedOrigins:  cfg.Server.AllowedOrigins,
			SessionDuration: time.Duration(cfg.Server.SessionMinutes) * time.Minute,
		}
		slog.Info("serving", "addr", serveAddr, "db", dbPath)
		return http.ListenAndServe(serveAddr, srv.Routes())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}
