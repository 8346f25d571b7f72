package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/s3nik/ccjournal/internal/analytics"
	"github.com/s3nik/ccjournal/internal/core"
	"github.com/s3nik/ccjournal/internal/render"
)

func (a *app) newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List every tracked date with volume and provenance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.syncBeforeQuery(); err != nil {
				return err
			}
			entries, err := a.historyEntries()
			if err != nil {
				return err
			}
			cmd.Println(render.HistoryView(entries))
			return nil
		},
	}
}

func (a *app) historyEntries() ([]render.HistoryEntry, error) {
	dates, err := a.store.ListDates()
	if err != nil {
		return nil, err
	}
	stats, err := a.store.LoadStats()
	if err != nil {
		return nil, err
	}

	entries := make([]render.HistoryEntry, 0, len(dates))
	for _, date := range dates {
		events, err := a.store.LoadDay(date)
		if err != nil {
			return nil, err
		}
		prov, err := a.store.DayProvenance(date)
		if err != nil {
			return nil, err
		}
		entry := render.HistoryEntry{
			Date:       date,
			Events:     len(events),
			Projects:   topProjects(events, 3),
			Categories: workCategories(events),
			Provenance: prov,
		}
		if cell := stats.ByDate[date]; cell != nil {
			entry.CostUSD = cell.CostUSD
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// topProjects names the date's busiest projects by event count.
func topProjects(events []core.Event, n int) []string {
	counts := map[string]int{}
	for _, ev := range events {
		counts[ev.Project]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// workCategories collects the distinct kinds of work the date's prompts
// asked for, sorted for stable output. Slash commands are not work.
func workCategories(events []core.Event) []string {
	seen := map[string]bool{}
	for _, ev := range events {
		if ev.Action != core.ActionUserPrompt {
			continue
		}
		if cat := analytics.WorkCategory(ev.Prompt); cat != analytics.WorkSlash {
			seen[cat] = true
		}
	}
	cats := make([]string, 0, len(seen))
	for cat := range seen {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}
