package main

import (
	"github.com/spf13/cobra"

	"github.com/s3nik/ccjournal/internal/aggregate"
	"github.com/s3nik/ccjournal/internal/render"
	"github.com/s3nik/ccjournal/internal/timerange"
)

func (a *app) newRangeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "range <expression>",
		Short: "Aggregate a date window (7d, this-month, last-month, 2026-02-01..2026-02-14)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := timerange.Resolve(args[0], a.now())
			if err != nil {
				return err
			}
			if err := a.syncBeforeQuery(); err != nil {
				return err
			}

			summary, err := aggregate.New(a.store, a.cfg.IdleThreshold()).Fold(window)
			if err != nil {
				return err
			}
			cmd.Println(render.RangeView(summary))
			return nil
		},
	}
}
