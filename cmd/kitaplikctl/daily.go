package main

import (
	"encoding/json"
	"fmt"
	"time"

	dailyService "anoa.com/kitaplik/internal/modules/daily/service"
	"github.com/spf13/cobra"
)

type dailyOptions struct {
	Date string
	Pool int
	K    int
	JSON bool
}

// newDailyCommand prints the indices the daily selector yields, which lets
// operators predict tomorrow's trivia set or book of the day.
func newDailyCommand() *cobra.Command {
	opts := &dailyOptions{}

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Print the daily selection for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Date == "" {
				opts.Date = time.Now().Format(time.DateOnly)
			}
			if _, err := time.Parse(time.DateOnly, opts.Date); err != nil {
				return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", opts.Date)
			}
			if opts.Pool <= 0 {
				return fmt.Errorf("--pool must be positive")
			}

			picked := dailyService.DailySelect(opts.Date, opts.Pool, opts.K)
			out := cmd.OutOrStdout()
			if opts.JSON {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"date":    opts.Date,
					"pool":    opts.Pool,
					"indices": picked,
				})
			}
			fmt.Fprintf(out, "%s pool=%d k=%d -> %v\n", opts.Date, opts.Pool, opts.K, picked)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&opts.Pool, "pool", 50, "pool size")
	cmd.Flags().IntVar(&opts.K, "k", 5, "number of picks")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "json output")

	return cmd
}
