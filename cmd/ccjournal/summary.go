package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/s3nik/ccjournal/internal/aggregate"
	"github.com/s3nik/ccjournal/internal/analytics"
	"github.com/s3nik/ccjournal/internal/core"
	"github.com/s3nik/ccjournal/internal/render"
	"github.com/s3nik/ccjournal/internal/session"
	"github.com/s3nik/ccjournal/internal/timerange"
)

type summaryOptions struct {
	date    string
	compact bool
	save    bool
	list    bool
	raw     bool
}

func (a *app) newSummaryCommand() *cobra.Command {
	var opts summaryOptions

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Render one day's engineering narrative",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.list {
				return a.listSavedSummaries(cmd)
			}
			if opts.date == "" {
				opts.date = a.today()
			}
			if _, err := core.ParseDate(opts.date); err != nil {
				return fmt.Errorf("bad --date %q: want YYYY-MM-DD", opts.date)
			}
			return a.runSummary(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "date to summarize (default today)")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "one-line summary")
	cmd.Flags().BoolVar(&opts.save, "save", false, "also write the summary to the state directory")
	cmd.Flags().BoolVar(&opts.list, "list", false, "list saved summaries")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "dump the day's events as JSON lines")
	return cmd
}

func (a *app) runSummary(cmd *cobra.Command, opts summaryOptions) error {
	if err := a.syncBeforeQuery(); err != nil {
		return err
	}

	events, err := a.store.LoadDay(opts.date)
	if err != nil {
		return err
	}

	if opts.raw {
		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, ev := range events {
			if err := enc.Encode(ev); err != nil {
				return err
			}
		}
		return nil
	}

	sessions := session.Reconstruct(opts.date, events, a.cfg.IdleThreshold())
	report := analytics.Analyze(opts.date, sessions)

	var totals *core.UsageTotals
	if stats, err := a.store.LoadStats(); err == nil {
		totals = stats.ByDate[opts.date]
	}

	out := render.DaySummary(report, totals, a.cfg.TopProjects, opts.compact)
	cmd.Println(out)

	if !opts.compact {
		if strip, err := a.weekStrip(opts.date); err == nil && strip != "" {
			cmd.Println(strip)
		}
	}

	if opts.save {
		if err := a.saveSummary(opts.date, out); err != nil {
			return err
		}
		cmd.Printf("Saved to %s\n", a.summaryPath(opts.date))
	}
	return nil
}

// weekStrip folds the seven days ending on date into a one-line activity
// trail. Rendering the day never fails because the week cannot be folded.
func (a *app) weekStrip(date string) (string, error) {
	end, err := core.ParseDate(date)
	if err != nil {
		return "", err
	}
	window := timerange.Range{Start: end.AddDate(0, 0, -6), End: end}
	summary, err := aggregate.New(a.store, a.cfg.IdleThreshold()).Fold(window)
	if err != nil {
		return "", err
	}
	return render.WeekStrip(summary), nil
}

func (a *app) summaryPath(date string) string {
	return filepath.Join(a.store.SummariesDir(), date+"-journal.txt")
}

func (a *app) saveSummary(date, rendered string) error {
	if err := os.MkdirAll(a.store.SummariesDir(), 0o755); err != nil {
		return fmt.Errorf("create summaries dir: %w", err)
	}
	return os.WriteFile(a.summaryPath(date), []byte(rendered+"\n"), 0o644)
}

// listSavedSummaries lists every tracked date with its event and project
// counts, so the user can pick a --date worth rendering.
func (a *app) listSavedSummaries(cmd *cobra.Command) error {
	dates, err := a.store.ListDates()
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		cmd.Println("Nothing tracked yet. Run sync first.")
		return nil
	}
	sort.Strings(dates)
	for _, date := range dates {
		events, err := a.store.LoadDay(date)
		if err != nil {
			return err
		}
		projects := map[string]bool{}
		for _, ev := range events {
			projects[ev.Project] = true
		}
		cmd.Printf("%s  %4d events · %d projects\n", date, len(events), len(projects))
	}
	return nil
}
