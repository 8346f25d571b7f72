package main

import (
	"github.com/spf13/cobra"

	"github.com/s3nik/ccjournal/internal/sync"
)

func (a *app) newBackfillCommand() *cobra.Command {
	var historyFile string

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Reconstruct historical dates from the assistant's prompt history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := historyFile
			if path == "" {
				path = a.cfg.HistoryFile
			}
			report, err := sync.Backfill(path, a.store)
			if err != nil {
				return err
			}

			cmd.Printf("Parsed %d history entries.\n", report.Entries)
			if len(report.Created) > 0 {
				cmd.Printf("Created %d dates (%s .. %s).\n",
					len(report.Created), report.Created[0], report.Created[len(report.Created)-1])
			}
			if len(report.Updated) > 0 {
				cmd.Printf("Refreshed %d previously backfilled dates.\n", len(report.Updated))
			}
			if len(report.Skipped) > 0 {
				cmd.Printf("Left %d detailed dates untouched.\n", len(report.Skipped))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&historyFile, "history-file", "", "history file to read (default from config)")
	return cmd
}
