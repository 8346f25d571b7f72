// Package aggregate folds daily logs and the stats aggregate over an
// inclusive date window.
package aggregate

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/s3nik/ccjournal/internal/analytics"
	"github.com/s3nik/ccjournal/internal/core"
	"github.com/s3nik/ccjournal/internal/session"
	"github.com/s3nik/ccjournal/internal/store"
	"github.com/s3nik/ccjournal/internal/timerange"
)

// DayActivity is one histogram cell.
type DayActivity struct {
	Date    string
	Events  int
	CostUSD float64
}

// ProjectTotals is one project's in-window activity. CostUSD comes from the
// stats by-project facet, which attributes usage over the project's whole
// history; activity tallies are window-scoped.
type ProjectTotals struct {
	Project        string
	FilesTouched   int
	TasksCompleted int
	Commands       int
	Prompts        int
	ActiveDays     int
	Score          int
	CostUSD        float64
}

// RangeSummary is the folded view of one window.
type RangeSummary struct {
	Window     timerange.Range
	Days       []DayActivity
	Projects   []ProjectTotals
	Totals     core.UsageTotals
	ActiveDays int
	Streak     int
}

// Aggregator folds windows against one store.
type Aggregator struct {
	store         *store.Store
	idleThreshold time.Duration
}

func New(st *store.Store, idleThreshold time.Duration) *Aggregator {
	return &Aggregator{store: st, idleThreshold: idleThreshold}
}

// Fold aggregates the window. Dates without a log file contribute an empty
// histogram cell, so the caller can render contiguous day strips.
func (a *Aggregator) Fold(window timerange.Range) (*RangeSummary, error) {
	stats, err := a.store.LoadStats()
	if err != nil {
		return nil, err
	}

	summary := &RangeSummary{Window: window}
	projects := make(map[string]*ProjectTotals)

	for _, date := range window.Dates() {
		events, err := a.store.LoadDay(date)
		if err != nil {
			return nil, err
		}

		day := DayActivity{Date: date, Events: len(events)}
		if cell := stats.ByDate[date]; cell != nil {
			day.CostUSD = cell.CostUSD
			summary.Totals.Merge(*cell)
		}
		summary.Days = append(summary.Days, day)
		if len(events) == 0 {
			continue
		}
		summary.ActiveDays++

		activeToday := make(map[string]bool)
		for _, s := range session.Reconstruct(date, events, a.idleThreshold) {
			pt, ok := projects[s.Project]
			if !ok {
				pt = &ProjectTotals{Project: s.Project}
				projects[s.Project] = pt
			}
			pt.FilesTouched += len(s.FilesCreated) + len(s.FilesModified)
			pt.TasksCompleted += s.TasksCompleted
			pt.Commands += lo.Sum(lo.Values(s.CommandKinds))
			pt.Prompts += len(s.Prompts)
			pt.Score += analytics.SubstanceScore(s)
			if !activeToday[s.Project] {
				activeToday[s.Project] = true
				pt.ActiveDays++
			}
		}
	}

	for name, pt := range projects {
		if cell := stats.ByProject[name]; cell != nil {
			pt.CostUSD = cell.CostUSD
		}
		summary.Projects = append(summary.Projects, *pt)
	}
	sort.Slice(summary.Projects, func(i, j int) bool {
		pi, pj := summary.Projects[i], summary.Projects[j]
		if pi.CostUSD != pj.CostUSD {
			return pi.CostUSD > pj.CostUSD
		}
		if pi.Score != pj.Score {
			return pi.Score > pj.Score
		}
		return pi.Project < pj.Project
	})

	summary.Streak = streak(summary.Days)
	return summary, nil
}

// streak counts consecutive active days ending at the most recent day with
// any activity.
func streak(days []DayActivity) int {
	i := len(days) - 1
	for i >= 0 && days[i].Events == 0 {
		i--
	}
	count := 0
	for i >= 0 && days[i].Events > 0 {
		count++
		i--
	}
	return count
}
