// Package render formats analytic output with lipgloss for terminal
// display. It is a thin presentation layer: all numbers and verdicts come
// from the analytics and aggregate packages.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/s3nik/ccjournal/internal/analytics"
	"github.com/s3nik/ccjournal/internal/core"
)

// DaySummary renders one date's narrative. compact collapses it to a few
// lines for script and prompt use; the full form is the daily journal view.
func DaySummary(report *analytics.DayReport, dayTotals *core.UsageTotals, topProjects int, compact bool) string {
	if report.Empty() {
		return emptyDay(report.Date)
	}
	if compact {
		return compactDay(report, dayTotals)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◆ "+report.Date) + "\n\n")
	b.WriteString(vibeLine(report.Vibe))
	if dayTotals != nil {
		b.WriteString(costLine(*dayTotals))
	}
	b.WriteString("\n")

	detailed, collapsed := analytics.SplitRanks(report.Ranks, topProjects)
	b.WriteString(sectionStyle.Render("Projects") + "\n")
	for _, rank := range detailed {
		b.WriteString(projectLine(rank, report.Vibe.Highlight))
	}
	if len(collapsed) > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more projects", len(collapsed))) + "\n")
	}
	b.WriteString("\n")

	if len(report.Deliverables) > 0 {
		b.WriteString(sectionStyle.Render("Shipped") + "\n")
		for _, group := range report.Deliverables {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				labelStyle.Render(group.Bucket+":"),
				valueStyle.Render(strings.Join(group.Paths, ", "))))
		}
		b.WriteString("\n")
	}

	if len(report.TopPrompts) > 0 {
		b.WriteString(sectionStyle.Render("Top prompts") + "\n")
		for i, sp := range report.TopPrompts {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				countStyle.Render(fmt.Sprintf("#%d", i+1)),
				valueStyle.Render(clip(sp.Text, 70)),
				dimStyle.Render(fmt.Sprintf("(impact %d)", sp.Score))))
		}
		b.WriteString("\n")
	}

	if len(report.Principles) > 0 {
		b.WriteString(sectionStyle.Render("Principles") + "\n")
		for _, p := range report.Principles {
			b.WriteString("  " + highlightStyle.Render(p.Name) + "\n")
			b.WriteString("    " + labelStyle.Render("today: ") + valueStyle.Render(p.Example) + "\n")
			b.WriteString("    " + labelStyle.Render("keep:  ") + dimStyle.Render(p.Extension) + "\n")
		}
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func emptyDay(date string) string {
	body := titleStyle.Render("◆ "+date) + "\n\n" +
		dimStyle.Render("No activity recorded.")
	return cardStyle.Render(body)
}

func compactDay(report *analytics.DayReport, dayTotals *core.UsageTotals) string {
	var parts []string
	parts = append(parts, titleStyle.Render(report.Date))
	parts = append(parts, fmt.Sprintf("%s energy, %s", report.Vibe.Energy, report.Vibe.Focus))
	if report.Vibe.Highlight != "" {
		parts = append(parts, "highlight "+highlightStyle.Render(report.Vibe.Highlight))
	}
	if dayTotals != nil {
		parts = append(parts, money(dayTotals.CostUSD))
	}
	var tally int
	for _, g := range report.Deliverables {
		tally += len(g.Paths)
	}
	parts = append(parts, countStyle.Render(fmt.Sprintf("%d deliverables", tally)))
	return strings.Join(parts, dimStyle.Render(" · "))
}

func vibeLine(v analytics.Vibe) string {
	line := fmt.Sprintf("%s %s  %s %s",
		labelStyle.Render("energy"), valueStyle.Render(v.Energy),
		labelStyle.Render("focus"), valueStyle.Render(v.Focus))
	if v.Highlight != "" {
		line += fmt.Sprintf("  %s %s", labelStyle.Render("highlight"), highlightStyle.Render(v.Highlight))
	}
	if len(v.Methods) > 0 {
		line += "\n" + labelStyle.Render("method ") + goodStyle.Render(strings.Join(v.Methods, ", "))
	}
	return line + "\n"
}

func costLine(t core.UsageTotals) string {
	if t.Requests == 0 {
		return ""
	}
	return fmt.Sprintf("%s %s  %s %s tokens  %s %s saved by cache\n",
		labelStyle.Render("cost"), money(t.CostUSD),
		labelStyle.Render("volume"), countStyle.Render(tokens(t.Total())),
		labelStyle.Render("and"), money(t.CacheSavingsUSD))
}

func projectLine(rank analytics.ProjectRank, highlight string) string {
	marker := "  "
	name := valueStyle.Render(rank.Project)
	if rank.Project == highlight {
		marker = goodStyle.Render("★ ")
		name = highlightStyle.Render(rank.Project)
	}
	return fmt.Sprintf("%s%s %s\n", marker, name,
		dimStyle.Render(fmt.Sprintf("%d files · %d tasks done · %d commands",
			rank.FilesTouched, rank.TasksCompleted, rank.Commands)))
}

func clip(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
