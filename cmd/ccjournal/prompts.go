package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s3nik/ccjournal/internal/analytics"
	"github.com/s3nik/ccjournal/internal/core"
	"github.com/s3nik/ccjournal/internal/render"
	"github.com/s3nik/ccjournal/internal/session"
)

func (a *app) newPromptsCommand() *cobra.Command {
	var (
		date string
		rank int
	)

	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Rank the day's prompts by downstream impact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date == "" {
				date = a.today()
			}
			if _, err := core.ParseDate(date); err != nil {
				return fmt.Errorf("bad --date %q: want YYYY-MM-DD", date)
			}
			if err := a.syncBeforeQuery(); err != nil {
				return err
			}

			events, err := a.store.LoadDay(date)
			if err != nil {
				return err
			}
			sessions := session.Reconstruct(date, events, a.cfg.IdleThreshold())
			var prompts []core.Prompt
			for _, s := range sessions {
				prompts = append(prompts, s.Prompts...)
			}
			top, slumps := analytics.Leaderboard(prompts)

			if rank > 0 {
				if rank > len(top) {
					return fmt.Errorf("rank %d out of range: leaderboard has %d entries", rank, len(top))
				}
				cmd.Println(render.PromptDetail(rank, top[rank-1]))
				return nil
			}
			cmd.Println(render.PromptsView(date, top, slumps))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date to rank (default today)")
	cmd.Flags().IntVar(&rank, "rank", 0, "show one leaderboard entry in detail")
	return cmd
}
