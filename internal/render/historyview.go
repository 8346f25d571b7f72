package render

import (
	"fmt"
	"strings"

	"github.com/s3nik/ccjournal/internal/core"
)

// HistoryEntry is one tracked date with its volume and provenance.
type HistoryEntry struct {
	Date       string
	Events     int
	Projects   []string
	Categories []string
	Provenance core.Provenance
	CostUSD    float64
}

// HistoryView lists every tracked date grouped by month, newest first, with
// an activity bar scaled to the busiest tracked day.
func HistoryView(entries []HistoryEntry) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("◆ History") + "\n\n")

	if len(entries) == 0 {
		b.WriteString(dimStyle.Render("Nothing tracked yet. Run sync first."))
		return cardStyle.Render(b.String())
	}

	max := 0
	for _, e := range entries {
		if e.Events > max {
			max = e.Events
		}
	}

	month := ""
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if m := monthOf(e.Date); m != month {
			if month != "" {
				b.WriteString("\n")
			}
			month = m
			b.WriteString(sectionStyle.Render(month) + "\n")
		}

		marker := goodStyle.Render("●")
		if e.Provenance == core.ProvenanceBackfilled {
			marker = dimStyle.Render("○")
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s",
			marker,
			valueStyle.Render(e.Date),
			countStyle.Render(activityBar(e.Events, max)),
			dimStyle.Render(fmt.Sprintf("%4d events", e.Events))))
		if len(e.Projects) > 0 {
			b.WriteString("  " + labelStyle.Render(strings.Join(e.Projects, ", ")))
		}
		if len(e.Categories) > 0 {
			b.WriteString("  " + dimStyle.Render(strings.Join(e.Categories, "/")))
		}
		if e.CostUSD > 0 {
			b.WriteString("  " + money(e.CostUSD))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + dimStyle.Render("● detailed   ○ backfilled"))

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func monthOf(date string) string {
	t, err := core.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("January 2006")
}

const activityBarWidth = 10

func activityBar(events, max int) string {
	if max == 0 || events == 0 {
		return strings.Repeat("·", activityBarWidth)
	}
	filled := (events*activityBarWidth + max - 1) / max
	return strings.Repeat("▪", filled) + strings.Repeat("·", activityBarWidth-filled)
}
