package render

import (
	"fmt"
	"strings"

	"github.com/s3nik/ccjournal/internal/aggregate"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RangeView renders one aggregated window: headline totals, a per-day
// activity histogram, and the cost-sorted project table.
func RangeView(summary *aggregate.RangeSummary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("◆ "+summary.Window.String()) + "\n\n")

	b.WriteString(fmt.Sprintf("%s %s  %s %s tokens  %s %d of %d days",
		labelStyle.Render("cost"), money(summary.Totals.CostUSD),
		labelStyle.Render("volume"), countStyle.Render(tokens(summary.Totals.Total())),
		labelStyle.Render("active"), summary.ActiveDays, len(summary.Days)))
	if summary.Streak > 1 {
		b.WriteString("  " + goodStyle.Render(fmt.Sprintf("%d-day streak", summary.Streak)))
	}
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Activity") + "\n")
	b.WriteString("  " + Histogram(summary.Days) + "\n")
	b.WriteString("  " + dimStyle.Render(histogramAxis(summary.Days)) + "\n\n")

	if len(summary.Projects) > 0 {
		b.WriteString(sectionStyle.Render("Projects by cost") + "\n")
		for _, p := range summary.Projects {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				money(p.CostUSD),
				valueStyle.Render(p.Project),
				dimStyle.Render(fmt.Sprintf("%d files · %d tasks · %d active days",
					p.FilesTouched, p.TasksCompleted, p.ActiveDays))))
		}
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// WeekStrip is the one-line week trail appended under a day summary.
func WeekStrip(summary *aggregate.RangeSummary) string {
	if len(summary.Days) == 0 {
		return ""
	}
	line := labelStyle.Render("week ") + Histogram(summary.Days)
	if summary.Streak > 1 {
		line += "  " + goodStyle.Render(fmt.Sprintf("%d-day streak", summary.Streak))
	}
	return line
}

// Histogram draws one block rune per day, scaled to the busiest day.
func Histogram(days []aggregate.DayActivity) string {
	if len(days) == 0 {
		return ""
	}
	max := 0
	for _, d := range days {
		if d.Events > max {
			max = d.Events
		}
	}

	var b strings.Builder
	for _, d := range days {
		if d.Events == 0 {
			b.WriteString(dimStyle.Render("·"))
			continue
		}
		idx := (d.Events*(len(sparkBlocks)-1) + max - 1) / max
		b.WriteString(countStyle.Render(string(sparkBlocks[idx])))
	}
	return b.String()
}

// histogramAxis labels the strip's endpoints.
func histogramAxis(days []aggregate.DayActivity) string {
	if len(days) == 0 {
		return ""
	}
	first, last := days[0].Date, days[len(days)-1].Date
	if first == last {
		return first
	}
	gap := len(days) - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	return first + strings.Repeat(" ", gap) + last
}
