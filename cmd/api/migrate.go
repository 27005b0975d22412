package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"yatube/internal/repository/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables and constraints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cfg.Database)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		slog.Info("migration done", "driver", cfg.Database.Driver)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
