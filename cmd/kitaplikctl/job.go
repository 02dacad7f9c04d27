package main

import (
	"fmt"

	"anoa.com/kitaplik/internal/config"
	"anoa.com/kitaplik/internal/server"
	"anoa.com/kitaplik/pkg/database"
	"github.com/spf13/cobra"
)

func newJobCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "List or run maintenance jobs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, cleanup, err := buildServer(opts)
			if err != nil {
				return err
			}
			defer cleanup()
			for _, name := range srv.Jobs().Registered() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "run <name>",
		Short: "Run a job once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, cleanup, err := buildServer(opts)
			if err != nil {
				return err
			}
			defer cleanup()
			return srv.Jobs().RunByName(cmd.Context(), args[0])
		},
	})

	return cmd
}

// buildServer wires the engine without Redis; jobs only touch the database.
func buildServer(opts *rootOptions) (*server.Server, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg, opts)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}
	srv, err := server.NewServer(cfg, db, nil, cat, log)
	if err != nil {
		return nil, nil, err
	}
	return srv, log.Sync, nil
}
