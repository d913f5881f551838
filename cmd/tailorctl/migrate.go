package main

import (
	"context"
	"fmt"
	"time"

	"resume-tailor/internal/database/migration"
	dbpostgres "resume-tailor/internal/database/postgres"
	"resume-tailor/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		cfg, log, err := loadAll()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		r := migration.Runner{FS: migrations.FS, Logger: log}
		if dryRun {
			pending, err := r.Pending(ctx, db.SQLDB())
			if err != nil {
				return err
			}
			for _, m := range pending {
				fmt.Fprintf(cmd.OutOrStdout(), "pending %s\n", m.Filename)
			}
			return nil
		}

		applied, err := r.Run(ctx, db.SQLDB())
		if err != nil {
			return err
		}
		log.Info("migrations done", zap.Int("applied", len(applied)))
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("dry-run", false, "list pending migrations without applying them")
	rootCmd.AddCommand(migrateCmd)
}
