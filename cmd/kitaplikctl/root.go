package main

import (
	"anoa.com/kitaplik/internal/catalog"
	"anoa.com/kitaplik/internal/config"
	"anoa.com/kitaplik/pkg/logger"
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	Verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "kitaplikctl",
		Short:         "Kitaplık operator tool",
		Long:          "Inspects daily selections and prepares the database for the reward engine.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newDailyCommand())
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newJobCommand(opts))

	return cmd
}

func newLogger(cfg *config.Config, opts *rootOptions) (*logger.Logger, error) {
	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Mode: cfg.AppEnv, Level: level})
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}
