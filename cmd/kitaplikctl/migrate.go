package main

import (
	"anoa.com/kitaplik/internal/bootstrap"
	"anoa.com/kitaplik/internal/config"
	"anoa.com/kitaplik/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the schema and seed badges, trivia and the admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, opts)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.Connect(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg.CatalogPath)
			if err != nil {
				return err
			}
			if err := bootstrap.Run(db, cat, log); err != nil {
				log.Error("migration failed", "error", err)
				return err
			}

			log.Info("migration completed")
			return nil
		},
	}
}
