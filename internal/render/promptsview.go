package render

import (
	"fmt"
	"strings"

	"github.com/s3nik/ccjournal/internal/analytics"
)

// PromptsView renders the day's impact leaderboard and its slumps.
func PromptsView(date string, top, slumps []analytics.ScoredPrompt) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("◆ Prompts · "+date) + "\n\n")

	if len(top) == 0 && len(slumps) == 0 {
		b.WriteString(dimStyle.Render("No prompts recorded."))
		return cardStyle.Render(b.String())
	}

	for i, sp := range top {
		b.WriteString(fmt.Sprintf("%s %s\n",
			countStyle.Render(fmt.Sprintf("#%d", i+1)),
			valueStyle.Render(clip(sp.Text, 80))))
		b.WriteString("   " + dimStyle.Render(fmt.Sprintf(
			"impact %d · %d files · %d tasks · %d commands · %d delegations · %s",
			sp.Score, sp.FilesTouched, sp.TasksCompleted, sp.Commands, sp.Delegations, sp.Project)) + "\n")
	}

	if len(slumps) > 0 {
		b.WriteString("\n" + sectionStyle.Render("No measurable output") + "\n")
		for _, sp := range slumps {
			kind := analytics.ClassifySlump(sp.Text)
			b.WriteString(fmt.Sprintf("  %s %s\n",
				labelStyle.Render("["+string(kind)+"]"),
				dimStyle.Render(clip(sp.Text, 70))))
		}
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// PromptDetail renders one leaderboard entry with its downstream events.
func PromptDetail(rank int, sp analytics.ScoredPrompt) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("◆ Prompt #%d", rank)) + "\n\n")
	b.WriteString(valueStyle.Render(sp.Text) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s · %s · impact %d",
		sp.Project, sp.Time.Format("15:04"), sp.Score)) + "\n\n")

	b.WriteString(sectionStyle.Render("What followed") + "\n")
	for _, ev := range sp.Events {
		subject := ev.Path
		if subject == "" {
			subject = firstOf(ev.Command, ev.Task, ev.Target, ev.Agent, ev.Description)
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			dimStyle.Render(ev.TS),
			labelStyle.Render(string(ev.Action)),
			valueStyle.Render(clip(subject, 60))))
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
