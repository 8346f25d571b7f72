package main

import (
	"github.com/spf13/cobra"

	"github.com/s3nik/ccjournal/internal/render"
)

func (a *app) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show usage and cost totals by model and project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.syncBeforeQuery(); err != nil {
				return err
			}
			stats, err := a.store.LoadStats()
			if err != nil {
				return err
			}
			cmd.Println(render.StatsView(stats))
			return nil
		},
	}
}
